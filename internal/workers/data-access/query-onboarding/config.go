// internal/workers/data-access/query-onboarding/config.go
package queryonboarding

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
