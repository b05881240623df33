package server

import (
	"time"
)

type Config struct {
	Port              int           `yaml:"port"`
	RateBuckets       int           `yaml:"rateBuckets"`
	RatePeriod        time.Duration `yaml:"ratePeriod"`
	RateMaxConcurrent int           `yaml:"rateMaxConcurrent"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}
