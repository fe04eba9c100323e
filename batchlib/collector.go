package batchlib

import (
	"fmt"
	"sort"
)

// Collector accumulates results coming in any order and restores an
// input order.
type Collector struct {
	entries ResultSet
}

func (c *Collector) Add(entry ResultEntry) {
	c.entries = append(c.entries, entry)
}

// Finish returns collected entries sorted by index. total is a number
// of entries which were sent to resolving; every index in [0, total)
// has to be present exactly once.
func (c *Collector) Finish(total uint64) (ResultSet, error) {
	rv := c.entries
	c.entries = nil

	if uint64(len(rv)) != total {
		return nil, fmt.Errorf("%w: got %d results for %d addresses",
			ErrInternalConsistency, len(rv), total)
	}

	sort.Slice(rv, func(i, j int) bool {
		return rv[i].Index < rv[j].Index
	})

	for i := range rv {
		if rv[i].Index != uint64(i) {
			return nil, fmt.Errorf("%w: result for index %d is missing or duplicated",
				ErrInternalConsistency, i)
		}
	}

	return rv, nil
}

// Collect drains the stream and returns an ordered result set.
func Collect(stream <-chan ResultEntry, total uint64) (ResultSet, error) {
	collector := NewCollector(int(total))

	for entry := range stream {
		collector.Add(entry)
	}

	return collector.Finish(total)
}

func NewCollector(sizeHint int) *Collector {
	if sizeHint < 0 {
		sizeHint = 0
	}

	return &Collector{
		entries: make(ResultSet, 0, sizeHint),
	}
}
