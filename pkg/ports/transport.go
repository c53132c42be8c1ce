package ports

import "net/http"

// HTTPDoer performs one HTTP exchange. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientFactory builds the platform HTTP client for a request.
// It returns an error when no client can be built in the current environment.
type ClientFactory func() (HTTPDoer, error)

// Abortable is anything the transport registry can tear down.
type Abortable interface {
	Abort()
}
