package batchlib_test

import (
	"encoding/json"
	"io"
	"net"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/mock"

	"github.com/9seconds/geobatch/batchlib"
)

type DatabaseMock struct {
	mock.Mock
}

func (m *DatabaseMock) City(ip net.IP) (*geoip2.City, bool, error) {
	args := m.Called(ip.String())
	city, _ := args.Get(0).(*geoip2.City)

	return city, args.Bool(1), args.Error(2)
}

func (m *DatabaseMock) ASN(ip net.IP) (*geoip2.ASN, bool, error) {
	args := m.Called(ip.String())
	asn, _ := args.Get(0).(*geoip2.ASN)

	return asn, args.Bool(1), args.Error(2)
}

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(raw string) (batchlib.LocationRecord, error) {
	args := m.Called(raw)

	return args.Get(0).(batchlib.LocationRecord), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(ip string, err error) {
	m.Called(ip, err)
}

func (m *LoggerMock) WorkerPanic(value interface{}) {
	m.Called(value)
}

type sliceSource struct {
	items []string
	pos   int
	errAt int
	err   error
}

func (s *sliceSource) Next() (batchlib.AddressEntry, error) {
	if s.err != nil && s.pos == s.errAt {
		return batchlib.AddressEntry{}, s.err
	}

	if s.pos >= len(s.items) {
		return batchlib.AddressEntry{}, io.EOF
	}

	rv := batchlib.AddressEntry{
		Index: uint64(s.pos),
		Raw:   s.items[s.pos],
	}
	s.pos++

	return rv, nil
}

func cityFixture(content string) *geoip2.City {
	rv := &geoip2.City{}

	if err := json.Unmarshal([]byte(content), rv); err != nil {
		panic(err)
	}

	return rv
}
