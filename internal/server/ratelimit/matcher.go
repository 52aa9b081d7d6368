package ratelimit

import "strings"

// MatchEndpoint resolves the rate limit tier for a request. The health probe
// is always unlimited so orchestrator checks are never shed under load.
// An exact path+method match wins; a config whose path ends in "/" acts as a
// prefix rule (for example "/courses/" covers "/courses/CS101"). Returns nil
// when no tier applies, leaving the caller on the default limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefixMatch == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefixMatch = c
		}
	}
	return prefixMatch
}
