package main

import (
	"caesar/internal/cipher"
	"caesar/internal/config"
	"caesar/internal/ctxlog"
	"caesar/internal/db"
	"caesar/internal/rec"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	defaultText = "hello world"
	defaultKey  = 4
)

var errUsage = errors.New("usage: caesar [<text> <key>]")

// encode returns the ciphertext and the normalized key it was made with.
func encode(args []string) (string, string, error) {
	switch len(args) {
	case 0:
		return cipher.Cipher(defaultText, defaultKey), fmt.Sprint(defaultKey), nil
	case 2:
		out, err := cipher.Encode(args[0], args[1])
		if err != nil {
			return "", "", err
		}
		n, _ := cipher.ParseKey(args[1]) // already accepted by Encode
		return out, n.String(), nil
	default:
		return "", "", errUsage
	}
}

// journal appends the ciphertext to the history db. A locked or broken db
// is reported as an error, never a panic.
func journal(ctx context.Context, c db.Config, key, out string) (err error) {
	defer rec.Error(&err)

	db.Open(c)
	defer ctxlog.Close(ctx, "db", db.Closer())

	_, err = db.Append(db.Entry{
		Time:       time.Now(),
		Source:     "cli",
		Key:        key,
		Ciphertext: out,
	})
	return err
}

func run(ctx context.Context, c config.Config, args []string, stdout io.Writer) (err error) {
	defer rec.Error(&err)

	out, key, err := encode(args)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, out)
	if err != nil {
		return err
	}

	if c.History.File != "" {
		if err := journal(ctx, c.History, key, out); err != nil {
			ctxlog.Get(ctx).Error("failed to journal ciphertext", "error", fmt.Errorf("history: %w", err))
		}
	}

	return nil
}

func main() {
	ctx := context.Background()

	var c config.Config
	if name := os.Getenv("CAESAR_CONFIG"); name != "" {
		var err error
		c, err = config.Load(ctx, name)
		if err != nil {
			ctxlog.Get(ctx).Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	ctx = ctxlog.Setup(ctx, "caesar", c.Log)
	logger := ctxlog.Get(ctx)

	err := run(ctx, c, os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("cipher failed", "error", err)
		os.Exit(1)
	}
}
