// internal/workers/assistant/answer-faq/config.go
package answerfaq

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 5 * time.Second,
	}, nil
}
