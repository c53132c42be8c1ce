// Package timer provides ports.Timer implementations: Real, backed by
// time.AfterFunc, and Manual, a deterministic clock for tests and for hosts
// that drive their own scheduling loop.
package timer
