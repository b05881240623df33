package main

import (
	"bytes"
	"caesar/internal/cipher"
	"caesar/internal/config"
	"caesar/internal/db"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.etcd.io/bbolt"
)

func TestRunDefault(t *testing.T) {
	out := &bytes.Buffer{}
	if err := run(context.Background(), config.Config{}, nil, out); err != nil {
		t.Fatal(err)
	}
	if have, want := out.String(), "LIPPS ASVPH\n"; have != want {
		t.Fatalf("output %q, want %q", have, want)
	}
}

func TestRunArgs(t *testing.T) {
	out := &bytes.Buffer{}
	if err := run(context.Background(), config.Config{}, []string{"xyz", "3"}, out); err != nil {
		t.Fatal(err)
	}
	if have, want := out.String(), "ABC\n"; have != want {
		t.Fatalf("output %q, want %q", have, want)
	}
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	if err := run(ctx, config.Config{}, []string{"only text"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("one arg: error %v, want usage", err)
	}
	if err := run(ctx, config.Config{}, []string{"a", "b", "c"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("three args: error %v, want usage", err)
	}
	if err := run(ctx, config.Config{}, []string{"abc", "x"}, &bytes.Buffer{}); !errors.Is(err, cipher.ErrInvalidInput) {
		t.Fatalf("bad key: error %v, want invalid input", err)
	}
}

func TestRunJournals(t *testing.T) {
	c := config.Config{}
	c.History.File = filepath.Join(t.TempDir(), "history.db")

	if err := run(context.Background(), c, []string{"Hi!", "2"}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	db.Open(c.History)
	defer db.Close()

	n := 0
	for _, e := range db.All() {
		n++
		if e.Source != "cli" || e.Key != "2" || e.Ciphertext != "JK" {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
	if n != 1 {
		t.Fatalf("%d entries, want 1", n)
	}
}

func TestRunJournalsNormalizedKey(t *testing.T) {
	c := config.Config{}
	c.History.File = filepath.Join(t.TempDir(), "history.db")

	if err := run(context.Background(), c, []string{"abc", " +27\n"}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	db.Open(c.History)
	defer db.Close()

	for _, e := range db.All() {
		if have, want := e.Key, "27"; have != want {
			t.Fatalf("journaled key %q, want %q", have, want)
		}
	}
}

func TestRunPrintsWhenHistoryLocked(t *testing.T) {
	c := config.Config{}
	c.History.File = filepath.Join(t.TempDir(), "history.db")
	c.History.Timeout = 50 * time.Millisecond

	locked, err := bbolt.Open(c.History.File, 0600, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer locked.Close()

	out := &bytes.Buffer{}
	if err := run(context.Background(), c, []string{"hello world", "4"}, out); err != nil {
		t.Fatalf("locked history failed the command: %v", err)
	}
	if have, want := out.String(), "LIPPS ASVPH\n"; have != want {
		t.Fatalf("output %q, want %q", have, want)
	}
	if db.Opened() {
		t.Fatal("db left open after failed journal")
	}
}
