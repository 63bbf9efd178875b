package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache in front of invoice
// reads.  Caching is off when Enabled is false or no Redis client is
// available.  KeyStrategy is one of "path", "path_query" (default) or
// "method_path_query".
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Invoices never change once
// written, so the default TTL is long.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 10*time.Minute),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "path_query"),
        Prefix:       envStr("CACHE_PREFIX", "rental-cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 64<<10),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
