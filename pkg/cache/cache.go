// Package cache stores computed absorption results keyed by request.
//
// Results are deterministic functions of the normalized request and the
// element table, so a cached entry never goes stale; entries still expire
// after [TTLResult] so disk and memory usage stay bounded.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI, one JSON file per entry
//   - [RedisCache] for shared deployments
//   - [NullCache] when caching is disabled
//
// Keys come from a [Keyer] so that callers sharing a backend can scope their
// entries, for example by the hash of an external cross-section table.
package cache

import (
	"context"
	"time"
)

// TTLResult is the default lifetime of a cached result.
const TTLResult = 24 * time.Hour

// KeyTypeResult labels result entries in cache hooks.
const KeyTypeResult = "result"

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// ResultKeyOpts holds the normalized request fields that determine a result.
type ResultKeyOpts struct {
	Formula      string  `json:"formula"`
	Radius       float64 `json:"radius"`
	Spectrum     float64 `json:"spectrum"`
	SpectrumType string  `json:"spectrum_type"`
	Density      float64 `json:"density"`
	DensityType  string  `json:"density_type"`
	Resolution   int     `json:"resolution"`
}

// Keyer generates cache keys.
type Keyer interface {
	ResultKey(opts ResultKeyOpts) string
}

// DefaultKeyer hashes the request fields under a versioned prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// resultKeyVersion changes whenever the result encoding changes.
const resultKeyVersion = "v1"

// ResultKey returns "result:v1:<sha256>" for opts.
func (DefaultKeyer) ResultKey(opts ResultKeyOpts) string {
	return hashKey("result:"+resultKeyVersion, opts)
}

// =============================================================================
// Null backend
// =============================================================================

// NullCache is a no-op cache that never stores anything.
// It is used when caching is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a cache miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
