package batchlib_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/9seconds/geobatch/batchlib"
)

type CollectorTestSuite struct {
	suite.Suite
}

func (suite *CollectorTestSuite) stream(indexes ...uint64) <-chan batchlib.ResultEntry {
	rv := make(chan batchlib.ResultEntry, len(indexes))

	for _, v := range indexes {
		rv <- batchlib.ResultEntry{Index: v}
	}

	close(rv)

	return rv
}

func (suite *CollectorTestSuite) TestRestoreOrder() {
	results, err := batchlib.Collect(suite.stream(3, 0, 4, 2, 1), 5)

	suite.NoError(err)
	suite.Len(results, 5)

	for i, v := range results {
		suite.EqualValues(i, v.Index)
	}
}

func (suite *CollectorTestSuite) TestEmpty() {
	results, err := batchlib.Collect(suite.stream(), 0)

	suite.NoError(err)
	suite.Empty(results)
}

func (suite *CollectorTestSuite) TestStreamClosedEarly() {
	_, err := batchlib.Collect(suite.stream(0, 2), 3)

	suite.True(errors.Is(err, batchlib.ErrInternalConsistency))
}

func (suite *CollectorTestSuite) TestTooManyResults() {
	_, err := batchlib.Collect(suite.stream(0, 1, 2), 2)

	suite.True(errors.Is(err, batchlib.ErrInternalConsistency))
}

func (suite *CollectorTestSuite) TestDuplicatedIndex() {
	_, err := batchlib.Collect(suite.stream(0, 1, 1), 3)

	suite.True(errors.Is(err, batchlib.ErrInternalConsistency))
}

func (suite *CollectorTestSuite) TestOutOfRangeIndex() {
	_, err := batchlib.Collect(suite.stream(0, 1, 5), 3)

	suite.True(errors.Is(err, batchlib.ErrInternalConsistency))
}

func (suite *CollectorTestSuite) TestFinishResets() {
	collector := batchlib.NewCollector(2)

	collector.Add(batchlib.ResultEntry{Index: 0})

	results, err := collector.Finish(1)

	suite.NoError(err)
	suite.Len(results, 1)

	results, err = collector.Finish(0)

	suite.NoError(err)
	suite.Empty(results)
}

func TestCollector(t *testing.T) {
	suite.Run(t, &CollectorTestSuite{})
}
