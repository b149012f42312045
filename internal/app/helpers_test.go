package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/assetpipe/internal/config"
	"github.com/specialistvlad/assetpipe/internal/hcl"
	"github.com/specialistvlad/assetpipe/internal/shell"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

func envOf(vars map[string]string) config.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

// setupAppTest builds an App over a hermetic environment and prints its logs
// when ASSETPIPE_TEST_LOGS=true.
func setupAppTest(t *testing.T, cfg *Config, env map[string]string, target shell.Target) (*App, *SafeBuffer) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	loader := &hcl.Loader{Environ: func() []string {
		var kv []string
		for k, v := range env {
			kv = append(kv, k+"="+v)
		}
		return kv
	}}

	opts := []Option{WithLookupEnv(envOf(env))}
	if target != nil {
		opts = append(opts, WithTarget(target))
	}
	a, err := NewApp(context.Background(), out, logs, cfg, loader, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("ASSETPIPE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}
