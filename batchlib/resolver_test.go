package batchlib_test

import (
	"errors"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/suite"

	"github.com/9seconds/geobatch/batchlib"
)

const londonCity = `{
	"Continent": {"Code": "EU", "Names": {"en": "Europe"}},
	"Country": {"IsoCode": "gb", "Names": {"en": "United Kingdom"}},
	"Subdivisions": [
		{"IsoCode": "ENG", "Names": {"en": "England"}},
		{"IsoCode": "WSM", "Names": {"en": "Westminster"}}
	],
	"City": {"Names": {"en": "London", "ru": "Лондон"}},
	"Postal": {"Code": "SW1A"},
	"Location": {
		"Latitude": 51.5142,
		"Longitude": -0.0931,
		"AccuracyRadius": 10,
		"TimeZone": "Europe/London"
	}
}`

type ResolverTestSuite struct {
	suite.Suite

	db *DatabaseMock
	r  batchlib.Resolver
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.db = &DatabaseMock{}
	suite.r = batchlib.NewResolver(suite.db)
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.db.AssertExpectations(suite.T())
}

func (suite *ResolverTestSuite) failure(err error) *batchlib.LookupFailure {
	var failure *batchlib.LookupFailure

	suite.Require().True(errors.As(err, &failure))

	return failure
}

func (suite *ResolverTestSuite) TestInvalidAddress() {
	for _, v := range []string{"999.999.999.999", "not-an-ip", "1.2.3", "8.8.8.8/24", ""} {
		_, err := suite.r.Resolve(v)

		failure := suite.failure(err)

		suite.Equal(batchlib.InvalidAddress, failure.Reason)
		suite.Equal(v, failure.IP)
	}
}

func (suite *ResolverTestSuite) TestReservedAddress() {
	for _, v := range []string{"10.0.0.1", "192.168.1.1", "172.16.3.4", "127.0.0.1", "::1", "fe80::1", "0.0.0.0"} {
		_, err := suite.r.Resolve(v)

		failure := suite.failure(err)

		suite.Equal(batchlib.NotFound, failure.Reason)
		suite.True(errors.Is(err, batchlib.ErrReservedAddress))
	}
}

func (suite *ResolverTestSuite) TestNotFound() {
	suite.db.On("City", "203.0.113.7").Return(nil, false, nil).Once()
	suite.db.On("ASN", "203.0.113.7").Return(nil, false, nil).Once()

	record, err := suite.r.Resolve("203.0.113.7")

	suite.Equal(batchlib.NotFound, suite.failure(err).Reason)
	suite.Equal("203.0.113.7", record.IP)
}

func (suite *ResolverTestSuite) TestCityDatabaseError() {
	dbErr := errors.New("corrupted search tree")

	suite.db.On("City", "8.8.8.8").Return(nil, false, dbErr).Once()

	_, err := suite.r.Resolve("8.8.8.8")

	suite.Equal(batchlib.DatabaseError, suite.failure(err).Reason)
	suite.True(errors.Is(err, dbErr))
}

func (suite *ResolverTestSuite) TestASNDatabaseError() {
	dbErr := errors.New("unexpected end of data")

	suite.db.On("City", "8.8.8.8").Return(&geoip2.City{}, true, nil).Once()
	suite.db.On("ASN", "8.8.8.8").Return(nil, false, dbErr).Once()

	_, err := suite.r.Resolve("8.8.8.8")

	suite.Equal(batchlib.DatabaseError, suite.failure(err).Reason)
	suite.True(errors.Is(err, dbErr))
}

func (suite *ResolverTestSuite) TestFullRecord() {
	suite.db.On("City", "81.2.69.142").Return(cityFixture(londonCity), true, nil).Once()
	suite.db.On("ASN", "81.2.69.142").Return(&geoip2.ASN{
		AutonomousSystemNumber:       20712,
		AutonomousSystemOrganization: "Andrews & Arnold Ltd",
	}, true, nil).Once()

	record, err := suite.r.Resolve(" 81.2.69.142\r")

	suite.NoError(err)
	suite.Equal("81.2.69.142", record.IP)
	suite.Equal("Europe", record.Continent)
	suite.Equal("EU", record.ContinentCode)
	suite.Equal("United Kingdom", record.Country)
	suite.Equal("GB", record.CountryISO)
	suite.Equal("England", record.Subdivision)
	suite.Equal("ENG", record.SubdivisionISO)
	suite.Equal("London", record.City)
	suite.Equal("SW1A", record.PostalCode)
	suite.Equal("Europe/London", record.TimeZone)
	suite.InDelta(51.5142, *record.Latitude, 1e-6)
	suite.InDelta(-0.0931, *record.Longitude, 1e-6)
	suite.EqualValues(10, *record.AccuracyRadius)
	suite.EqualValues(20712, *record.ASN)
	suite.Equal("Andrews & Arnold Ltd", record.ASOrganization)
	suite.Equal("London, England, United Kingdom", record.LocationString)
}

func (suite *ResolverTestSuite) TestCountryNameFallback() {
	suite.db.On("City", "2a00:1450::1").Return(cityFixture(`{"Country": {"IsoCode": "DE"}}`), true, nil).Once()
	suite.db.On("ASN", "2a00:1450::1").Return(nil, false, nil).Once()

	record, err := suite.r.Resolve("2a00:1450::1")

	suite.NoError(err)
	suite.Equal("Germany", record.Country)
	suite.Equal("DE", record.CountryISO)
	suite.Equal("Germany", record.LocationString)
	suite.Nil(record.Latitude)
	suite.Nil(record.Longitude)
	suite.Nil(record.AccuracyRadius)
	suite.Nil(record.ASN)
}

func (suite *ResolverTestSuite) TestOnlyASN() {
	suite.db.On("City", "1.1.1.1").Return(nil, false, nil).Once()
	suite.db.On("ASN", "1.1.1.1").Return(&geoip2.ASN{
		AutonomousSystemNumber:       13335,
		AutonomousSystemOrganization: "CLOUDFLARENET",
	}, true, nil).Once()

	record, err := suite.r.Resolve("1.1.1.1")

	suite.NoError(err)
	suite.EqualValues(13335, *record.ASN)
	suite.Equal("CLOUDFLARENET", record.ASOrganization)
	suite.Empty(record.Country)
	suite.Empty(record.LocationString)
}

func TestResolver(t *testing.T) {
	suite.Run(t, &ResolverTestSuite{})
}
