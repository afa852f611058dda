package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/messier-skychart/internal/observability"
)

const watchedCSV = "Messier number,Object type,Right ascension,Declination\n" +
	"M1,Supernova remnant,05h 34m 31.9s,+22° 00′ 52″\n"

func startWatcher(t *testing.T, path string) (*Store, *clockwork.FakeClock) {
	t.Helper()

	fake := clockwork.NewFakeClock()
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })

	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()
	src := NewFileSource(path, logger)
	loader := NewLoader(logger, metrics, src)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	store := NewStore(metrics)
	store.Set(ds)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWatcher(src, loader, store, logger, metrics).Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return store, fake
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messier.csv")
	require.NoError(t, os.WriteFile(path, []byte(watchedCSV), 0o600))

	store, fake := startWatcher(t, path)
	updated := watchedCSV + "M13,Globular cluster,16h 41m 41.2s,+36° 27′ 37″\n"

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(updated), 0o600)
		fake.Advance(DefaultDebounce)
		return store.Get().Generation > 1
	}, 5*time.Second, 20*time.Millisecond)

	ds := store.Get()
	assert.Equal(t, 2, ds.Len())
	_, ok := ds.Find("M13")
	assert.True(t, ok)
}

func TestWatcher_KeepsPreviousOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messier.csv")
	require.NoError(t, os.WriteFile(path, []byte(watchedCSV), 0o600))

	store, fake := startWatcher(t, path)
	before := store.Get()

	// Header only: parses, but yields an empty catalog.
	header := strings.SplitN(watchedCSV, "\n", 2)[0] + "\n"
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(header), 0o600))
		fake.Advance(DefaultDebounce)
		time.Sleep(20 * time.Millisecond)
	}

	assert.Same(t, before, store.Get())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messier.csv")
	require.NoError(t, os.WriteFile(path, []byte(watchedCSV), 0o600))

	store, fake := startWatcher(t, path)
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
		fake.Advance(DefaultDebounce)
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, uint64(1), store.Get().Generation)
}
