package batchlib

import (
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedResolve struct {
	record LocationRecord
	err    error
}

type cachingResolver struct {
	Resolver

	cache *lru.Cache[string, cachedResolve]
}

func (c cachingResolver) Resolve(raw string) (LocationRecord, error) {
	cacheKey := strings.TrimSpace(raw)

	if value, ok := c.cache.Get(cacheKey); ok {
		return value.record, value.err
	}

	record, err := c.Resolver.Resolve(raw)

	// database errors are not a property of an address
	var failure *LookupFailure
	if err == nil || (errors.As(err, &failure) && failure.Reason != DatabaseError) {
		c.cache.Add(cacheKey, cachedResolve{record: record, err: err})
	}

	return record, err
}

// NewCachingResolver wraps a resolver with LRU cache of the given size.
// Repeated addresses are resolved once; every occurrence still gets its
// own ResultEntry. Cached records are shared, so callers must not modify
// pointer fields of returned records.
func NewCachingResolver(resolver Resolver, itemsCount int) Resolver {
	cache, err := lru.New[string, cachedResolve](itemsCount)
	if err != nil {
		panic(err)
	}

	return cachingResolver{
		Resolver: resolver,
		cache:    cache,
	}
}
