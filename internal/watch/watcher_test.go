package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"fiximports/internal/config"
	"fiximports/internal/mapping"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncBuffer guards a buffer written by the flush goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startWatcher(t *testing.T, root string, out *syncBuffer) *Watcher {
	t.Helper()
	return startWatcherWithDebounce(t, root, out, 50*time.Millisecond)
}

func startWatcherWithDebounce(t *testing.T, root string, out *syncBuffer, debounce time.Duration) *Watcher {
	t.Helper()

	w, err := New(Options{
		Root:     root,
		Skip:     []string{"node_modules"},
		Table:    mapping.Default(),
		Debounce: debounce,
		Out:      out,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}
	return w
}

func fileEquals(path, want string) func() bool {
	return func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == want
	}
}

func TestWatcherFixesWrittenFile(t *testing.T) {
	root := t.TempDir()
	out := &syncBuffer{}
	w := startWatcher(t, root, out)

	path := filepath.Join(root, "carousel.tsx")
	require.NoError(t, os.WriteFile(path, []byte("import useEmbla from \"embla-carousel-react@8.6.0\";\n"), 0644))

	require.Eventually(t, fileEquals(path, "import useEmbla from \"embla-carousel-react\";\n"), 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool { return w.Stats().Fixed == 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), "Fixed imports in: "+path)
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	startWatcher(t, root, &syncBuffer{})

	dir := filepath.Join(root, "components", "ui")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "otp.tsx")
	require.NoError(t, os.WriteFile(path, []byte("import { OTPInput } from \"input-otp@1.4.2\";\n"), 0644))

	require.Eventually(t, fileEquals(path, "import { OTPInput } from \"input-otp\";\n"), 5*time.Second, 20*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root, &syncBuffer{})

	md := filepath.Join(root, "README.md")
	content := "npm i sonner@2.0.3\n"
	require.NoError(t, os.WriteFile(md, []byte(content), 0644))

	// Give the watcher a chance to act on the write, then check it didn't.
	marker := filepath.Join(root, "marker.ts")
	require.NoError(t, os.WriteFile(marker, []byte("import 'vaul@1.1.2'\n"), 0644))
	require.Eventually(t, fileEquals(marker, "import 'vaul'\n"), 5*time.Second, 20*time.Millisecond)

	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, 1, w.Stats().Fixed)
}

func TestWatcherMissingRoot(t *testing.T) {
	w, err := New(Options{Root: filepath.Join(t.TempDir(), "missing"), Table: mapping.Default()})
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	select {
	case <-w.Ready():
	default:
		t.Fatal("Ready not closed after Run failed")
	}
}

func TestWatcherTinyDebounce(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Watch.Debounce = "1ns"

	root := t.TempDir()
	startWatcherWithDebounce(t, root, &syncBuffer{}, cfg.GetDebounce())

	path := filepath.Join(root, "sheet.tsx")
	require.NoError(t, os.WriteFile(path, []byte("import * as SheetPrimitive from \"@radix-ui/react-dialog@1.1.6\";\n"), 0644))

	require.Eventually(t, fileEquals(path, "import * as SheetPrimitive from \"@radix-ui/react-dialog\";\n"), 5*time.Second, 20*time.Millisecond)
}
