package gateway

import "time"

// Config holds settings for the model gateway client.
type Config struct {
	// BaseURL is the HTTP endpoint for the Ollama instance, e.g. http://localhost:11434
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request timeout. Every call is bounded by it; a
	// request that exceeds it fails rather than hanging the caller.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// CircuitFailureThreshold opens the circuit after this many consecutive failures
	CircuitFailureThreshold int `yaml:"circuit_failure_threshold" json:"circuit_failure_threshold"`
	// CircuitReset is the duration after which the circuit attempts to half-open
	CircuitReset time.Duration `yaml:"circuit_reset" json:"circuit_reset"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:                 "http://localhost:11434",
		Timeout:                 8 * time.Second,
		CircuitFailureThreshold: 5,
		CircuitReset:            30 * time.Second,
	}
}
