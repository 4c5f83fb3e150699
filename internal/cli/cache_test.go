package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/racklabs/rackplan/internal/config"
)

func TestCacheDirConfigOverride(t *testing.T) {
	c := &CLI{cfg: &config.Config{}}
	c.cfg.Cache.Dir = filepath.Join(t.TempDir(), "specs")

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != c.cfg.Cache.Dir {
		t.Errorf("cacheDir() = %q, want the configured directory", dir)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := &CLI{cfg: &config.Config{}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
	if !strings.Contains(dir, ".cache") {
		t.Errorf("cacheDir() = %q, should contain '.cache'", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	c := &CLI{cfg: &config.Config{}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(custom, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "specs")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{}
	c.cfg.Cache.Dir = dir

	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after clear, found %d entries", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{}
	c.cfg.Cache.Dir = filepath.Join(t.TempDir(), "never-created")

	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("clearing a missing cache should not fail: %v", err)
	}
}
