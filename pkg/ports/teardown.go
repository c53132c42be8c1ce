package ports

// TeardownSource signals that the host is going away.
type TeardownSource interface {
	// OnTeardown registers fn to run once when teardown is signaled.
	OnTeardown(fn func())
}
