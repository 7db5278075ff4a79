package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig overrides the default rate for one route
type EndpointConfig struct {
	Path   string  // exact path, or a prefix when it ends with "/"
	Method string  // HTTP method (GET, POST, etc.)
	Rate   float64 // requests per second
	Burst  int     // bucket size; defaults to 1 when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rate            float64 // default requests per second per client
	Burst           int
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused this long are dropped
	Whitelist       map[string]bool
	Unlimited       []string // paths never limited
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration for the API. A zero rate disables
// limiting. exempt lists client IPs that are never limited.
func NewConfig(rate float64, burst int, exempt ...string) *Config {
	if burst <= 0 {
		burst = max(1, int(rate))
	}
	return &Config{
		Enabled:         rate > 0,
		Rate:            rate,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(exempt),
		Unlimited:       []string{"/health"},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the routes with their own limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Each request fans out to third-party sites
		{Path: "/jobs/analyze", Method: "POST", Rate: 0.2, Burst: 2},
		{Path: "/render/", Method: "POST", Rate: 2, Burst: 5},
	}
}

// parseIPList turns client addresses into a lookup set
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
