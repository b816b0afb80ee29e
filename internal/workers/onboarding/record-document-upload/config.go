// internal/workers/onboarding/record-document-upload/config.go
package recorddocumentupload

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 15 * time.Second,
	}, nil
}
