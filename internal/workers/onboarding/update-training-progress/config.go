// internal/workers/onboarding/update-training-progress/config.go
package updatetrainingprogress

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 15 * time.Second,
	}, nil
}
