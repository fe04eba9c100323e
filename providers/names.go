package providers

const (
	KindCity = "city"
	KindASN  = "asn"
)

var (
	// CityDatabaseNames are file names which are tried in the database
	// directory if a city database name is not set explicitly.
	CityDatabaseNames = []string{
		"GeoLite2-City.mmdb",
		"GeoIP2-City.mmdb",
	}

	// ASNDatabaseNames are file names which are tried in the database
	// directory if an ASN database name is not set explicitly.
	ASNDatabaseNames = []string{
		"GeoLite2-ASN.mmdb",
		"GeoIP2-ASN.mmdb",
	}
)
