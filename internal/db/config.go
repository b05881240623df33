package db

import "time"

type Config struct {
	File string `yaml:"file"`
	// Timeout bounds the wait for the file lock. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout"`
}
