// internal/workers/onboarding/verify-document/config.go
package verifydocument

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 15 * time.Second,
	}, nil
}
