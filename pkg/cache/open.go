package cache

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend  string
	Dir      string // file backend
	RedisURL string // redis backend
	Prefix   string // redis key prefix
}

// Open builds the cache described by opts. An empty backend means file.
func Open(opts Options) (Cache, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis cache: url is required")
		}
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "absorb:"
		}
		c, err := NewRedisCache(opts.RedisURL, prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone, "null", "off":
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q (must be one of: file, redis, none)", ErrUnknownBackend, opts.Backend)
}
