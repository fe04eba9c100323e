package exporters

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/9seconds/geobatch/batchlib"
)

// CSVHeader is a stable set of columns of CSV output.
var CSVHeader = []string{
	"ip",
	"continent",
	"continent_code",
	"country",
	"country_iso",
	"subdivision",
	"subdivision_iso",
	"city",
	"postal_code",
	"latitude",
	"longitude",
	"accuracy_radius",
	"time_zone",
	"asn",
	"as_organization",
	"location_string",
	"error",
}

func exportCSV(results batchlib.ResultSet, w io.Writer) error {
	bufWriter := bufio.NewWriter(w)
	writer := csv.NewWriter(bufWriter)
	row := make([]string, len(CSVHeader))

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}

	for i := range results {
		fillCSVRow(row, &results[i])

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("cannot write csv row %d: %w", results[i].Index, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("cannot flush csv: %w", err)
	}

	if err := bufWriter.Flush(); err != nil {
		return fmt.Errorf("cannot flush csv: %w", err)
	}

	return nil
}

func fillCSVRow(row []string, entry *batchlib.ResultEntry) {
	for i := range row {
		row[i] = ""
	}

	if entry.Failure != nil {
		row[0] = entry.Failure.IP
		row[16] = entry.Failure.Reason.String()

		return
	}

	rec := &entry.Record

	row[0] = rec.IP
	row[1] = rec.Continent
	row[2] = rec.ContinentCode
	row[3] = rec.Country
	row[4] = rec.CountryISO
	row[5] = rec.Subdivision
	row[6] = rec.SubdivisionISO
	row[7] = rec.City
	row[8] = rec.PostalCode

	if rec.Latitude != nil {
		row[9] = strconv.FormatFloat(*rec.Latitude, 'f', -1, 64)
	}

	if rec.Longitude != nil {
		row[10] = strconv.FormatFloat(*rec.Longitude, 'f', -1, 64)
	}

	if rec.AccuracyRadius != nil {
		row[11] = strconv.FormatUint(uint64(*rec.AccuracyRadius), 10)
	}

	row[12] = rec.TimeZone

	if rec.ASN != nil {
		row[13] = strconv.FormatUint(uint64(*rec.ASN), 10)
	}

	row[14] = rec.ASOrganization
	row[15] = rec.LocationString
}
