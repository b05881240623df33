package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func write(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoad(t *testing.T) {
	name := write(t, `
log:
  dir: log
history:
  file: data/history.db
server:
  port: 8080
  rateBuckets: 64
  ratePeriod: 10ms
  rateMaxConcurrent: 4
  shutdownTimeout: 5s
`)

	c, err := Load(context.Background(), name)
	if err != nil {
		t.Fatal(err)
	}

	if have, want := c.Log.Dir, "log"; have != want {
		t.Fatalf("log.dir = %q, want %q", have, want)
	}
	if have, want := c.History.File, "data/history.db"; have != want {
		t.Fatalf("history.file = %q, want %q", have, want)
	}
	if have, want := c.Server.Port, 8080; have != want {
		t.Fatalf("server.port = %d, want %d", have, want)
	}
	if have, want := c.Server.RatePeriod, 10*time.Millisecond; have != want {
		t.Fatalf("server.ratePeriod = %s, want %s", have, want)
	}
	if have, want := c.Server.ShutdownTimeout, 5*time.Second; have != want {
		t.Fatalf("server.shutdownTimeout = %s, want %s", have, want)
	}
}

func TestLoadStrict(t *testing.T) {
	name := write(t, "server:\n  prot: 8080\n")

	if _, err := Load(context.Background(), name); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
