// internal/workers/data-access/search-roster/config.go
package searchroster

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultIndex: "employee_roster",
	}
}
