package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/catalog/catalogtest"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeCatalog(t *testing.T, path string, data catalog.Data) {
	t.Helper()
	b, err := yaml.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

// title is polled from require.Eventually, which runs it on another
// goroutine, so a lookup error reads as "not yet" instead of failing the test.
func title(store *catalog.Store, id string) string {
	p, err := store.ByID(id)
	if err != nil {
		return ""
	}
	return p.Title
}

func startWatcher(t *testing.T) (*Watcher, *catalog.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, catalogtest.Sample())
	store := catalogtest.NewStore(t)

	w, err := New(path, store, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w, store, path
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	w, store, path := startWatcher(t)

	data := catalogtest.Sample()
	data.Projects[1].Title = "Indoor Mapping"
	writeCatalog(t, path, data)

	require.Eventually(t, func() bool {
		return title(store, "robot-mapping") == "Indoor Mapping"
	}, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return w.Stats().Reloads >= 1 }, time.Second, 10*time.Millisecond)
}

func TestWatcher_KeepsCatalogOnInvalidFile(t *testing.T) {
	w, store, path := startWatcher(t)

	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - id: x\n    category: astronomy\n"), 0o644))

	require.Eventually(t, func() bool { return w.Stats().Failures >= 1 }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 5, store.Len())
	require.Contains(t, w.Stats().LastError, "astronomy")
}

func TestWatcher_IgnoresEmptyFile(t *testing.T) {
	w, store, path := startWatcher(t)

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.Eventually(t, func() bool { return w.Stats().Failures >= 1 }, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 5, store.Len())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, _, path := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("hi"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.Zero(t, w.Stats().Events)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, _, _ := startWatcher(t)
	w.Stop()
	w.Stop()
}

func TestTickInterval(t *testing.T) {
	require.Equal(t, 10*time.Millisecond, tickInterval(time.Millisecond))
	require.Equal(t, 50*time.Millisecond, tickInterval(100*time.Millisecond))
	require.Equal(t, 100*time.Millisecond, tickInterval(time.Second))
}
