package cli

import (
	"io"
	"testing"

	"github.com/racklabs/rackplan/internal/config"
	"github.com/racklabs/rackplan/pkg/buildinfo"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"arrange", "items", "catalog", "cache", "serve", "completion"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q", name)
		}
	}

	if root.Version != buildinfo.Version {
		t.Errorf("root version = %q, want %q", root.Version, buildinfo.Version)
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestApplyConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{
		Arrange: config.ArrangeConfig{
			Project:      "Config Job",
			Capacity:     24,
			Margin:       2,
			VentInterval: 5,
		},
	}

	cmd := c.arrangeCommand()
	if err := cmd.Flags().Set("project", "Flag Job"); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Project: "Flag Job"}
	c.applyConfig(cmd, &opts)

	if opts.Project != "Flag Job" {
		t.Errorf("flag should win over config, got %q", opts.Project)
	}
	if opts.Capacity != 24 {
		t.Errorf("unset capacity should come from config, got %d", opts.Capacity)
	}
	if opts.Margin != 2 {
		t.Errorf("unset margin should come from config, got %d", opts.Margin)
	}
	if opts.VentInterval != 5 {
		t.Errorf("geometry should always come from config, got %d", opts.VentInterval)
	}
}

func TestApplyConfigZeroConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{}

	cmd := c.arrangeCommand()
	opts := pipeline.Options{Capacity: 12}
	c.applyConfig(cmd, &opts)

	if opts.Capacity != 12 {
		t.Errorf("zero config should not clobber options, got capacity %d", opts.Capacity)
	}
	if opts.Project != "" {
		t.Errorf("zero config should leave project alone, got %q", opts.Project)
	}
}

func TestLoadConfigOnlyOnce(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = &config.Config{Arrange: config.ArrangeConfig{Capacity: 24}}

	// An already-loaded config must survive the persistent pre-run.
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.cfg.Arrange.Capacity != 24 {
		t.Error("loadConfig should not replace an existing config")
	}
}
