package batchlib

import (
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

const namesLanguage = "en"

type resolver struct {
	db Database
}

func (r resolver) Resolve(raw string) (LocationRecord, error) {
	raw = strings.TrimSpace(raw)
	rv := LocationRecord{IP: raw}

	ip := net.ParseIP(raw)
	if ip == nil {
		return rv, &LookupFailure{IP: raw, Reason: InvalidAddress}
	}

	if isReservedIP(ip) {
		return rv, &LookupFailure{IP: raw, Reason: NotFound, Err: ErrReservedAddress}
	}

	city, cityFound, err := r.db.City(ip)
	if err != nil {
		return rv, &LookupFailure{IP: raw, Reason: DatabaseError, Err: err}
	}

	asn, asnFound, err := r.db.ASN(ip)
	if err != nil {
		return rv, &LookupFailure{IP: raw, Reason: DatabaseError, Err: err}
	}

	if !cityFound && !asnFound {
		return rv, &LookupFailure{IP: raw, Reason: NotFound}
	}

	if cityFound && city != nil {
		projectCity(&rv, city)
	}

	if asnFound && asn != nil {
		projectASN(&rv, asn)
	}

	rv.LocationString = joinNonEmpty(", ", rv.City, rv.Subdivision, rv.Country)

	return rv, nil
}

func projectCity(rv *LocationRecord, city *geoip2.City) {
	rv.Continent = city.Continent.Names[namesLanguage]
	rv.ContinentCode = city.Continent.Code
	rv.CountryISO = NormalizeAlpha2Code(city.Country.IsoCode)
	rv.Country = city.Country.Names[namesLanguage]

	if rv.Country == "" {
		rv.Country = CountryName(rv.CountryISO)
	}

	// subdivisions go from the most general to the most specific one
	if len(city.Subdivisions) > 0 {
		rv.Subdivision = city.Subdivisions[0].Names[namesLanguage]
		rv.SubdivisionISO = city.Subdivisions[0].IsoCode
	}

	rv.City = city.City.Names[namesLanguage]
	rv.PostalCode = city.Postal.Code
	rv.TimeZone = city.Location.TimeZone

	loc := city.Location
	if loc.Latitude != 0 || loc.Longitude != 0 || loc.AccuracyRadius != 0 {
		latitude, longitude := loc.Latitude, loc.Longitude
		rv.Latitude = &latitude
		rv.Longitude = &longitude
	}

	if loc.AccuracyRadius != 0 {
		radius := loc.AccuracyRadius
		rv.AccuracyRadius = &radius
	}
}

func projectASN(rv *LocationRecord, asn *geoip2.ASN) {
	if asn.AutonomousSystemNumber != 0 {
		number := asn.AutonomousSystemNumber
		rv.ASN = &number
	}

	rv.ASOrganization = asn.AutonomousSystemOrganization
}

func isReservedIP(ip net.IP) bool {
	return ip.IsPrivate() ||
		ip.IsLoopback() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast()
}

func joinNonEmpty(sep string, parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))

	for _, v := range parts {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	return strings.Join(nonEmpty, sep)
}

// NewResolver returns a resolver which queries the given database.
// Database is never modified, so the same resolver can be used by any
// number of goroutines.
func NewResolver(db Database) Resolver {
	return resolver{db: db}
}
