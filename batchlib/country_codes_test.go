package batchlib_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/9seconds/geobatch/batchlib"
)

type CountryCodeTestSuite struct {
	suite.Suite
}

func (suite *CountryCodeTestSuite) TestNormalizeAlpha2Code() {
	suite.Equal("RU", batchlib.NormalizeAlpha2Code("ru"))
	suite.Equal("", batchlib.NormalizeAlpha2Code("zz"))
	suite.Equal("", batchlib.NormalizeAlpha2Code("Eu"))
	suite.Equal("", batchlib.NormalizeAlpha2Code("ap"))
	suite.Equal("", batchlib.NormalizeAlpha2Code("RUS"))
	suite.Equal("", batchlib.NormalizeAlpha2Code(""))
	suite.Equal("FR", batchlib.NormalizeAlpha2Code("FX"))
	suite.Equal("FR", batchlib.NormalizeAlpha2Code(" FR "))
	suite.Equal("GB", batchlib.NormalizeAlpha2Code("UK"))
}

func (suite *CountryCodeTestSuite) TestCountryName() {
	suite.Equal("Russia", batchlib.CountryName("ru"))
	suite.Equal("United Kingdom", batchlib.CountryName("uk"))
	suite.Equal("", batchlib.CountryName("zz"))
	suite.Equal("", batchlib.CountryName("QQ"))
}

func TestCountryCode(t *testing.T) {
	suite.Run(t, &CountryCodeTestSuite{})
}
