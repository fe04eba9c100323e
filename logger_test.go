package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9seconds/geobatch/batchlib"
)

func TestLoggerConcurrentLookupErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, true)
	wg := &sync.WaitGroup{}

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				ip := strconv.Itoa(worker) + "." + strconv.Itoa(j)
				log.LookupError(ip, &batchlib.LookupFailure{IP: ip, Reason: batchlib.InvalidAddress})
			}
		}(i)
	}

	wg.Wait()

	scanner := bufio.NewScanner(buf)
	lines := 0

	for scanner.Scan() {
		record := map[string]interface{}{}

		assert.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		assert.Equal(t, "lookup", record["event_name"])
		assert.Equal(t, "debug", record["level"])

		lines++
	}

	assert.Equal(t, 16*100, lines)
}

func TestLoggerDatabaseErrorLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, false)

	log.LookupError("8.8.8.8", &batchlib.LookupFailure{IP: "8.8.8.8", Reason: batchlib.NotFound})
	assert.Empty(t, buf.String())

	log.LookupError("8.8.8.8", &batchlib.LookupFailure{
		IP:     "8.8.8.8",
		Reason: batchlib.DatabaseError,
		Err:    errors.New("corrupted"),
	})

	record := map[string]interface{}{}

	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "error", record["level"])
	assert.Equal(t, "8.8.8.8", record["ip"])
}
