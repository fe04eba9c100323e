// Package exporters serializes result sets into CSV and JSON.
package exporters

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/9seconds/geobatch/batchlib"
)

type Format uint8

const (
	FormatJSON Format = iota
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	}

	return "unknown"
}

// Classify chooses an output format by a file extension. Everything
// which is not .csv is JSON.
func Classify(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}

	return FormatJSON
}

// Export writes results to the given writer in a chosen format.
func Export(results batchlib.ResultSet, format Format, w io.Writer) error {
	switch format {
	case FormatCSV:
		return exportCSV(results, w)
	case FormatJSON:
		return exportJSON(results, w)
	}

	return fmt.Errorf("unsupported format %d", format)
}
