// internal/workers/roster/create-employee-record/config.go
package createemployeerecord

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() (*Config, error) {
	return &Config{
		Timeout: 10 * time.Second,
	}, nil
}
