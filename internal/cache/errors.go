package cache

import "errors"

var (
	ErrCacheUnavailable = errors.New("cache is unavailable")
	ErrCorruptedEntry   = errors.New("corrupted cache entry")
)
