// Package config loads the YAML configuration shared by the caesar commands.
package config

import (
	"caesar/internal/ctxlog"
	"caesar/internal/db"
	"caesar/internal/rec"
	"caesar/internal/server"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Log     ctxlog.Config `yaml:"log"`
	History db.Config     `yaml:"history"`
	Server  server.Config `yaml:"server"`
}

// Load decodes filename strictly: unknown fields are an error.
func Load(ctx context.Context, filename string) (config Config, err error) {
	defer rec.Wrap(&err, "config: %w")

	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	err = dec.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
