// internal/workers/reporting/generate-completion-report/config.go
package generatecompletionreport

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 20 * time.Second,
	}, nil
}
