/*
Package request implements the asynchronous request transport.

A Request wraps one HTTP exchange with a fixed lifecycle:

	unsent -> in-flight -> success | error | timeout | aborted

The first terminal transition wins. Once a request has finished its exchange
is cancelled, its timer is cancelled, it leaves the Registry, and no further
notification is delivered, whatever arrives late.

Responses must follow the envelope protocol: a body starting with
domain.ResponsePrefix followed by a JSON domain.Envelope. Subscribers listen
on three channels (done, error, finally); done and error always fire before
finally.

	reg := request.NewRegistry()
	req := request.New("/api/items",
		request.WithMethod(domain.MethodGET),
		request.WithData(map[string]string{"page": "2"}),
		request.WithTimeout(5*time.Second),
		request.WithRegistry(reg),
	)
	req.OnDone(func(payload any) { ... })
	req.OnError(func(errValue any) {
		if domain.IsTimeout(errValue) { ... }
	})
	if err := req.Send(ctx); err != nil {
		// environment error: no HTTP transport
	}

The Registry tracks every in-flight request so that a teardown signal can
abort all of them at once.
*/
package request
