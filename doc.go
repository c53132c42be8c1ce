/*
Package javelin is a client for asynchronous request/response exchanges with
a server that speaks the envelope protocol, plus a normalized UI event object.

# Concept

Every async request is sent with the __async__=true marker. The server answers
with a body that starts with the "for (;;);" guard followed by a JSON
envelope:

	for (;;);{"payload": ..., "error": ..., "javelin_metadata": {...},
	          "javelin_behaviors": {...}, "onload": [...]}

The client validates the guard, merges metadata into a store, runs onload
instructions against a registry of named callbacks, notifies subscribers and
initializes behaviors. A request ends exactly once: success, error, timeout
or abort.

# Usage

	client := javelin.New(
		javelin.WithLogger(logger),
		javelin.WithDefaultTimeout(5*time.Second),
	)
	client.Callbacks().Register("refresh", func(ctx context.Context, args map[string]any) error {
		return nil
	})

	req := client.NewRequest("https://example.com/items",
		request.WithMethod(domain.MethodGET),
		request.WithData(map[string]string{"page": "2"}),
	)
	req.OnDone(func(payload any) { fmt.Println(payload) })
	req.OnError(func(errValue any) {
		if domain.IsTimeout(errValue) {
			fmt.Println("timed out")
		}
	})
	if err := req.Send(ctx); err != nil {
		log.Fatal(err)
	}

Do is the blocking form:

	payload, err := client.Do(ctx, "https://example.com/items")

# Teardown

The client owns the registry of in-flight requests. Binding it to a teardown
source aborts them all at once, without notifying subscribers:

	sig := teardown.NewSignal(ctx)
	defer sig.Stop()
	client.BindTeardown(sig)

# Events

Package event wraps native UI events with a uniform, immutable view and
package keys maps platform key codes to a small set of special key names.
*/
package javelin
