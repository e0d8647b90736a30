package weather

import (
	"encoding/json"
	"strings"
)

const cacheKeyPrefix = "weather:"

// Record is the provider payload (location + current blocks), kept verbatim.
type Record = json.RawMessage

type Source string

const (
	SourceCache    Source = "cache"
	SourceProvider Source = "provider"
)

// LookupResult is a record plus where it came from.
type LookupResult struct {
	Record Record
	Source Source
}

// NormalizeCity lowercases and trims a city name for local keying only.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// CacheKey maps a city to its cache entry. Inputs differing only by case or
// surrounding whitespace share a key.
func CacheKey(city string) string {
	return cacheKeyPrefix + NormalizeCity(city)
}
