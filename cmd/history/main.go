package main

import (
	"caesar/internal/config"
	"caesar/internal/ctxlog"
	"caesar/internal/db"
	"caesar/internal/rec"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// run logs every journal entry and returns how many there were. With reset
// the journal is emptied afterwards.
func run(ctx context.Context, c config.Config, reset bool) (n int, err error) {
	defer rec.Error(&err)

	if c.History.File == "" {
		return 0, fmt.Errorf("config: history.file is not set")
	}

	logger := ctxlog.Get(ctx)

	logger.Info("opening db")
	db.Open(c.History)
	defer ctxlog.Close(ctx, "db", db.Closer())

	for id, e := range db.All() {
		logger.Info("entry",
			"id", id,
			"time", e.Time.Format(time.RFC3339),
			"source", e.Source,
			"key", e.Key,
			"ciphertext", e.Ciphertext,
		)
		n++
	}
	logger.Info("history listed", "entries", n)

	if reset {
		if err := db.Clear(); err != nil {
			return n, fmt.Errorf("clear: %w", err)
		}
		logger.Info("history cleared")
	}

	return n, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reset := flag.Bool("clear", false, "remove all entries after listing them")
	flag.Parse()

	filename := "config.yaml"
	if flag.NArg() > 0 {
		filename = flag.Arg(0)
	}

	c, err := config.Load(ctx, filename)
	if err != nil {
		ctxlog.Get(ctx).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx = ctxlog.Setup(ctx, "history", c.Log)

	logger := ctxlog.Get(ctx)

	_, err = run(ctx, c, *reset)
	if err != nil {
		logger.Error("stopped unexpectedly", "error", err)
		os.Exit(1)
	}
}
