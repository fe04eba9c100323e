package batchlib

// AddressEntry is a single input address with its position in the
// input. Indices are dense and start from 0.
type AddressEntry struct {
	Index uint64
	Raw   string
}

// LocationRecord is a flat projection of everything databases know
// about an address. Empty strings and nil pointers mean that a database
// has no such data for the address.
type LocationRecord struct {
	IP             string   `json:"ip"`
	Continent      string   `json:"continent"`
	ContinentCode  string   `json:"continent_code"`
	Country        string   `json:"country"`
	CountryISO     string   `json:"country_iso"`
	Subdivision    string   `json:"subdivision"`
	SubdivisionISO string   `json:"subdivision_iso"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postal_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AccuracyRadius *uint16  `json:"accuracy_radius"`
	TimeZone       string   `json:"time_zone"`
	ASN            *uint    `json:"asn"`
	ASOrganization string   `json:"as_organization"`
	LocationString string   `json:"location_string"`
}

// ResultEntry is an outcome of resolving a single AddressEntry. If
// Failure is nil, Record is valid.
type ResultEntry struct {
	Index   uint64
	Record  LocationRecord
	Failure *LookupFailure
}

func (r ResultEntry) OK() bool {
	return r.Failure == nil
}

// IP returns an address this entry was made for.
func (r ResultEntry) IP() string {
	if r.Failure != nil {
		return r.Failure.IP
	}

	return r.Record.IP
}

// ResultSet is a list of results sorted by input index.
type ResultSet []ResultEntry
