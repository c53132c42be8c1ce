package domain

import "errors"

// ErrNoTransport is returned by Send when no platform HTTP client could be built.
var ErrNoTransport = errors.New("no http transport available")

// ErrAlreadySent is returned when Send is called on a request that was already sent or finished.
var ErrAlreadySent = errors.New("request already sent")

// ErrNegativeTimeout is returned when a request is configured with a negative timeout.
var ErrNegativeTimeout = errors.New("timeout must not be negative")

// ErrUnsupportedMethod is returned for methods other than GET and POST.
var ErrUnsupportedMethod = errors.New("unsupported method")

// ErrMetadataNotFound is returned when a metadata key is not present in a store.
var ErrMetadataNotFound = errors.New("metadata not found")

// ErrBehaviorNotFound is returned when an envelope names an unregistered behavior.
var ErrBehaviorNotFound = errors.New("behavior not found")

// ErrOnloadNotFound is returned when an onload instruction names an unregistered callback.
var ErrOnloadNotFound = errors.New("onload callback not found")

// ErrEmptyResponse is returned when a response body is empty.
var ErrEmptyResponse = errors.New("empty response")

// ErrMissingPrefix is returned when a response body does not start with ResponsePrefix.
var ErrMissingPrefix = errors.New("response is missing the envelope prefix")
