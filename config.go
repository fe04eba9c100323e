package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/hjson/hjson-go"

	"github.com/9seconds/geobatch/batchlib"
)

const (
	DefaultDatabaseDirectory = "/usr/share/GeoIP"

	MaxWorkers       = 1 << 16
	MaxResultsBuffer = 1 << 20
	MaxCacheSize     = 1 << 24
)

type config struct {
	DatabaseDirectory string `json:"database_directory"`
	CityDatabase      string `json:"city_database"`
	ASNDatabase       string `json:"asn_database"`
	Workers           uint   `json:"workers"`
	ResultsBuffer     uint   `json:"results_buffer"`
	CacheSize         uint   `json:"cache_size"`
}

func (c *config) GetDatabaseDirectory() string {
	if c.DatabaseDirectory != "" {
		return c.DatabaseDirectory
	}

	return DefaultDatabaseDirectory
}

func (c *config) GetWorkers() int {
	if c.Workers == 0 {
		return batchlib.DefaultWorkers()
	}

	return int(c.Workers)
}

// GetResultsBuffer returns 0 if buffer size has to be derived from a
// number of workers.
func (c *config) GetResultsBuffer() int {
	return int(c.ResultsBuffer)
}

func (c *config) GetCacheSize() int {
	return int(c.CacheSize)
}

// ApplyFlags overrides values from the config file with explicitly set
// command line values. Zero values mean 'not set'. Result is validated
// the same way as a config file is.
func (c *config) ApplyFlags(databaseDirectory string, workers, cacheSize uint) error {
	if databaseDirectory != "" {
		c.DatabaseDirectory = databaseDirectory
	}

	if workers != 0 {
		c.Workers = workers
	}

	if cacheSize != 0 {
		c.CacheSize = cacheSize
	}

	if err := c.Validate(); err != nil {
		return batchlib.NewConfigurationError("incorrect command line value", err)
	}

	return nil
}

func (c *config) Validate() error {
	if c.Workers > MaxWorkers {
		return fmt.Errorf("too many workers %d, max is %d", c.Workers, MaxWorkers)
	}

	if c.ResultsBuffer > MaxResultsBuffer {
		return fmt.Errorf("too large results buffer %d, max is %d",
			c.ResultsBuffer, MaxResultsBuffer)
	}

	if c.CacheSize > MaxCacheSize {
		return fmt.Errorf("too large cache size %d, max is %d", c.CacheSize, MaxCacheSize)
	}

	return nil
}

func parseConfig(r io.Reader) (*config, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse hjson: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("incorrect config values: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	if conf.DatabaseDirectory != "" {
		conf.DatabaseDirectory, err = filepath.Abs(conf.DatabaseDirectory)
		if err != nil {
			return nil, fmt.Errorf("incorrect database directory: %w", err)
		}
	}

	return &conf, nil
}

// readConfig returns an empty config if path is empty: every value
// has a default.
func readConfig(path string) (*config, error) {
	if path == "" {
		return &config{}, nil
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}

	defer fp.Close()

	return parseConfig(fp)
}
