package testutils

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	adapter "github.com/aretw0/javelin/pkg/adapters/http"
)

// NewEnvelopeServer starts an envelope server for fixtures.
// The server is closed when the test ends.
func NewEnvelopeServer(t *testing.T, fixtures ...adapter.Fixture) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(adapter.NewHandler(fixtures))
	t.Cleanup(srv.Close)
	return srv
}

// WriteFile creates a file named name with content in a temporary directory
// and returns its absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}
