package providers

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
	"github.com/spf13/afero"

	"github.com/9seconds/geobatch/batchlib"
)

// DatabaseInfo describes an opened database file.
type DatabaseInfo struct {
	Kind      string
	Path      string
	Type      string
	BuildTime time.Time
}

// MaxMind is a pair of MaxMind databases: a mandatory city one and an
// optional ASN one. Readers are memory-mapped and never reopened, so
// MaxMind is safe for concurrent use without any locking.
type MaxMind struct {
	city      *maxminddb.Reader
	asn       *maxminddb.Reader
	databases []DatabaseInfo
}

func (m *MaxMind) City(ip net.IP) (*geoip2.City, bool, error) {
	record := &geoip2.City{}

	_, ok, err := m.city.LookupNetwork(ip, record)
	if err != nil {
		return nil, false, fmt.Errorf("cannot lookup %s in city database: %w", ip, err)
	}

	return record, ok, nil
}

func (m *MaxMind) ASN(ip net.IP) (*geoip2.ASN, bool, error) {
	if m.asn == nil {
		return nil, false, nil
	}

	record := &geoip2.ASN{}

	_, ok, err := m.asn.LookupNetwork(ip, record)
	if err != nil {
		return nil, false, fmt.Errorf("cannot lookup %s in asn database: %w", ip, err)
	}

	return record, ok, nil
}

// Databases returns a list of opened databases.
func (m *MaxMind) Databases() []DatabaseInfo {
	return m.databases
}

func (m *MaxMind) Close() error {
	var err error

	if m.city != nil {
		err = m.city.Close()
		m.city = nil
	}

	if m.asn != nil {
		if asnErr := m.asn.Close(); err == nil {
			err = asnErr
		}

		m.asn = nil
	}

	return err
}

func (m *MaxMind) open(fs *afero.BasePathFs, kind string, names []string) (*maxminddb.Reader, error) {
	for _, name := range names {
		exists, err := afero.Exists(fs, name)
		if err != nil {
			return nil, fmt.Errorf("cannot check a file %s: %w", name, err)
		}

		if !exists {
			continue
		}

		path, err := fs.RealPath(name)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve a file name of the database: %w", err)
		}

		reader, err := maxminddb.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot initialize a reader of maxminddb %s: %w", path, err)
		}

		m.databases = append(m.databases, DatabaseInfo{
			Kind:      kind,
			Path:      path,
			Type:      reader.Metadata.DatabaseType,
			BuildTime: time.Unix(int64(reader.Metadata.BuildEpoch), 0),
		})

		return reader, nil
	}

	return nil, os.ErrNotExist
}

// OpenMaxMind opens databases from the directory. Empty names mean
// that well-known file names are tried. Absence of the directory or
// the city database is a *batchlib.ConfigurationError; absence of the
// ASN database is not an error, ASN fields are left empty then.
func OpenMaxMind(directory, cityName, asnName string) (*MaxMind, error) {
	directory, err := filepath.Abs(directory)
	if err != nil {
		return nil, batchlib.NewConfigurationError("incorrect database directory", err)
	}

	osFs := afero.NewOsFs()

	if ok, err := afero.DirExists(osFs, directory); err != nil || !ok {
		if err == nil {
			err = os.ErrNotExist
		}

		return nil, batchlib.NewConfigurationError("cannot access database directory "+directory, err)
	}

	fs := afero.NewBasePathFs(osFs, directory).(*afero.BasePathFs)
	rv := &MaxMind{}

	rv.city, err = rv.open(fs, KindCity, candidateNames(cityName, CityDatabaseNames))
	if err != nil {
		return nil, batchlib.NewConfigurationError("cannot open city database in "+directory, err)
	}

	rv.asn, err = rv.open(fs, KindASN, candidateNames(asnName, ASNDatabaseNames))
	if err != nil && (asnName != "" || !os.IsNotExist(err)) {
		rv.Close() // nolint: errcheck

		return nil, batchlib.NewConfigurationError("cannot open asn database in "+directory, err)
	}

	return rv, nil
}

func candidateNames(name string, defaults []string) []string {
	if name != "" {
		return []string{name}
	}

	return defaults
}
