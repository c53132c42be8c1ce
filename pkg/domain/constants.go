package domain

// Wire protocol literals. Both are matched byte for byte by the server side
// and must not be changed.
const (
	// ResponsePrefix precedes every envelope in a response body.
	ResponsePrefix = "for (;;);"

	// AsyncMarker is the field injected into every outgoing payload.
	AsyncMarker = "__async__"

	// AsyncMarkerValue is the value sent with AsyncMarker.
	AsyncMarkerValue = "true"

	// FormContentType is the content type of POST bodies.
	FormContentType = "application/x-www-form-urlencoded"
)

// ErrorTimeout is the error value delivered to error subscribers when a
// request times out. Servers never send negative error codes, so it cannot
// collide with an envelope error.
const ErrorTimeout = -9000

// IsTimeout reports whether an error notification value is the timeout sentinel.
func IsTimeout(v any) bool {
	code, ok := v.(int)
	return ok && code == ErrorTimeout
}

// Method is the HTTP verb of a request.
type Method string

const (
	MethodGET  Method = "GET"
	MethodPOST Method = "POST"
)

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return m == MethodGET || m == MethodPOST
}
