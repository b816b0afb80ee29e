// internal/workers/onboarding/aggregate-progress/config.go
package aggregateprogress

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout:  15 * time.Second,
		CacheTTL: 5 * time.Minute,
	}, nil
}
