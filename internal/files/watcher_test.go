package files

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"serpentaware/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 20 * time.Millisecond

func startWatcher(t *testing.T, path string, debounce time.Duration, reloads chan<- catalog.Dataset, errs chan<- error) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(path, func(_ context.Context, d catalog.Dataset) error {
		reloads <- d
		return nil
	}, WithDebounce(debounce), WithErrorHandler(func(err error) { errs <- err }))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	// give fsnotify a moment to register the directory
	time.Sleep(50 * time.Millisecond)
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "catalog.yaml", []byte(yamlDataset))
	reloads := make(chan catalog.Dataset, 4)
	errs := make(chan error, 4)
	stop := startWatcher(t, path, testDebounce, reloads, errs)
	defer stop()

	updated := strings.Replace(yamlDataset, "Grass Snake", "Smooth Snake", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case d := <-reloads:
		require.Len(t, d.Snakes, 1)
		assert.Equal(t, "Smooth Snake", d.Snakes[0].Name)
	case err := <-errs:
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherSkipsInvalidFile(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "catalog.yaml", []byte(yamlDataset))
	reloads := make(chan catalog.Dataset, 4)
	errs := make(chan error, 4)
	stop := startWatcher(t, path, testDebounce, reloads, errs)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("snakes: [{name: ''}]"), 0o600))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "invalid dataset")
	case <-reloads:
		t.Fatal("invalid dataset must not be delivered")
	case <-time.After(3 * time.Second):
		t.Fatal("no reload attempt observed")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "catalog.yaml", []byte(yamlDataset))
	reloads := make(chan catalog.Dataset, 4)
	errs := make(chan error, 4)
	stop := startWatcher(t, path, testDebounce, reloads, errs)
	defer stop()

	writeDataset(t, dir, "notes.txt", []byte("unrelated"))

	select {
	case <-reloads:
		t.Fatal("sibling file triggered a reload")
	case err := <-errs:
		t.Fatalf("sibling file triggered a reload attempt: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := NewWatcher("/definitely/not/here/catalog.yaml", func(context.Context, catalog.Dataset) error { return nil })
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	const debounce = 300 * time.Millisecond
	path := writeDataset(t, t.TempDir(), "catalog.yaml", []byte(yamlDataset))
	reloads := make(chan catalog.Dataset, 8)
	errs := make(chan error, 8)
	stop := startWatcher(t, path, debounce, reloads, errs)
	defer stop()

	names := []string{"Smooth Snake", "Dice Snake", "Aesculapian Snake", "Viperine Snake"}
	for _, name := range names {
		updated := strings.Replace(yamlDataset, "Grass Snake", name, 1)
		require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case d := <-reloads:
		require.Len(t, d.Snakes, 1)
		assert.Equal(t, "Viperine Snake", d.Snakes[0].Name, "the reload sees the last write")
	case err := <-errs:
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	select {
	case d := <-reloads:
		t.Fatalf("burst produced a second reload: %+v", d.Snakes)
	case <-time.After(2 * debounce):
	}
}
