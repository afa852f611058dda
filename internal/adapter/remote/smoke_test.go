//go:build remote

package remote

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hits a real catalog URL set in SKYCHART_REMOTE_URL.
// Run with: go test -tags=remote ./internal/adapter/remote/ -v -count=1

func TestSmoke_FetchRemoteCatalog(t *testing.T) {
	url := os.Getenv("SKYCHART_REMOTE_URL")
	if url == "" {
		t.Fatal("SKYCHART_REMOTE_URL must be set to run smoke tests")
	}

	c := NewClient(url, 10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	data, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Messier")
}
