package batchlib

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Database is a read-only geolocation database. Implementations must be
// safe for concurrent use without external locking. A false flag means
// that database has no record for the address.
type Database interface {
	City(net.IP) (*geoip2.City, bool, error)
	ASN(net.IP) (*geoip2.ASN, bool, error)
}

// Resolver turns a raw address into a LocationRecord. Errors returned
// by resolvers of this package are always *LookupFailure.
type Resolver interface {
	Resolve(raw string) (LocationRecord, error)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(raw string) (LocationRecord, error)

// Resolve implements Resolver.
func (fx ResolverFunc) Resolve(raw string) (LocationRecord, error) {
	return fx(raw)
}

// Source is a single-pass sequence of addresses. Next returns io.EOF
// when the sequence is exhausted.
type Source interface {
	Next() (AddressEntry, error)
}

type Logger interface {
	LookupError(ip string, err error)
	WorkerPanic(value interface{})
}
