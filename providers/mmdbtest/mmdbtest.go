// Package mmdbtest writes small MaxMind databases with well-known
// content. It is intended to be used in tests only.
//
// City database:
//
//	81.2.69.0/24    GB, England, London
//	8.8.8.0/24      US, no city
//	2001:4860::/32  US, no city
//
// ASN database:
//
//	81.2.69.0/24    AS20712 Andrews & Arnold Ltd
//	8.8.8.0/24      AS15169 GOOGLE
//	1.1.1.0/24      AS13335 CLOUDFLARENET
package mmdbtest

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

const (
	CityFileName = "GeoLite2-City.mmdb"
	ASNFileName  = "GeoLite2-ASN.mmdb"
)

func names(en string) mmdbtype.Map {
	return mmdbtype.Map{"en": mmdbtype.String(en)}
}

func unitedStates() mmdbtype.Map {
	return mmdbtype.Map{
		"continent": mmdbtype.Map{
			"code":  mmdbtype.String("NA"),
			"names": names("North America"),
		},
		"country": mmdbtype.Map{
			"iso_code": mmdbtype.String("US"),
			"names":    names("United States"),
		},
		"location": mmdbtype.Map{
			"latitude":        mmdbtype.Float64(37.751),
			"longitude":       mmdbtype.Float64(-97.822),
			"accuracy_radius": mmdbtype.Uint16(1000),
			"time_zone":       mmdbtype.String("America/Chicago"),
		},
	}
}

func london() mmdbtype.Map {
	return mmdbtype.Map{
		"city": mmdbtype.Map{
			"names": names("London"),
		},
		"continent": mmdbtype.Map{
			"code":  mmdbtype.String("EU"),
			"names": names("Europe"),
		},
		"country": mmdbtype.Map{
			"iso_code": mmdbtype.String("GB"),
			"names":    names("United Kingdom"),
		},
		"subdivisions": mmdbtype.Slice{
			mmdbtype.Map{
				"iso_code": mmdbtype.String("ENG"),
				"names":    names("England"),
			},
		},
		"postal": mmdbtype.Map{
			"code": mmdbtype.String("EC2V"),
		},
		"location": mmdbtype.Map{
			"latitude":        mmdbtype.Float64(51.5142),
			"longitude":       mmdbtype.Float64(-0.0931),
			"accuracy_radius": mmdbtype.Uint16(10),
			"time_zone":       mmdbtype.String("Europe/London"),
		},
	}
}

func asn(number uint32, organization string) mmdbtype.Map {
	return mmdbtype.Map{
		"autonomous_system_number":       mmdbtype.Uint32(number),
		"autonomous_system_organization": mmdbtype.String(organization),
	}
}

func write(path, databaseType string, records map[string]mmdbtype.Map) error {
	writer, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType: databaseType,
		RecordSize:   28,
	})
	if err != nil {
		return fmt.Errorf("cannot create mmdb writer: %w", err)
	}

	for cidr, value := range records {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return fmt.Errorf("incorrect network %s: %w", cidr, err)
		}

		if err := writer.Insert(network, value); err != nil {
			return fmt.Errorf("cannot insert %s: %w", cidr, err)
		}
	}

	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	defer fp.Close()

	if _, err := writer.WriteTo(fp); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	return fp.Close()
}

func WriteCity(path string) error {
	return write(path, "GeoLite2-City", map[string]mmdbtype.Map{
		"81.2.69.0/24":   london(),
		"8.8.8.0/24":     unitedStates(),
		"2001:4860::/32": unitedStates(),
	})
}

func WriteASN(path string) error {
	return write(path, "GeoLite2-ASN", map[string]mmdbtype.Map{
		"81.2.69.0/24": asn(20712, "Andrews & Arnold Ltd"),
		"8.8.8.0/24":   asn(15169, "GOOGLE"),
		"1.1.1.0/24":   asn(13335, "CLOUDFLARENET"),
	})
}

// WriteDirectory writes both databases into the directory with default
// GeoLite2 file names.
func WriteDirectory(dir string) error {
	if err := WriteCity(filepath.Join(dir, CityFileName)); err != nil {
		return err
	}

	return WriteASN(filepath.Join(dir, ASNFileName))
}
