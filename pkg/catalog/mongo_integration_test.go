//go:build integration

package catalog

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMongoSource_Integration(t *testing.T) {
	uri := os.Getenv("RACKPLAN_MONGO_URI")
	if uri == "" {
		t.Skip("RACKPLAN_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src, err := NewMongoSource(ctx, MongoOptions{URI: uri, Database: "rackplan_test"})
	if err != nil {
		t.Fatalf("NewMongoSource() error: %v", err)
	}
	defer src.Close(ctx)

	samples := SampleEntries()
	written, err := src.Import(ctx, samples)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if written != len(samples) {
		t.Errorf("imported %d entries, want %d", written, len(samples))
	}

	spec, err := src.Lookup(ctx, Query{Brand: "Ubiquiti", Model: "UDM-Pro"})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if spec.Units != 1 || spec.Subsystem != "Network" {
		t.Errorf("got %+v", spec)
	}
	if spec.Source != "mongo" {
		t.Errorf("source: got %q", spec.Source)
	}

	if _, err := src.Lookup(ctx, Query{Brand: "Acme", Model: "NOPE-9999"}); err == nil {
		t.Error("unknown product should not resolve")
	}
}
