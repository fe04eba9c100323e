package exporters

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/9seconds/geobatch/batchlib"
)

const jsonIndent = "  "

type jsonFailure struct {
	IP    string `json:"ip"`
	Error string `json:"error"`
}

// exportJSON streams an indented array element by element, so a huge
// result set is never duplicated in memory.
func exportJSON(results batchlib.ResultSet, w io.Writer) error {
	bufWriter := bufio.NewWriter(w)
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)

	encoder.SetEscapeHTML(false)
	encoder.SetIndent(jsonIndent, jsonIndent)

	if len(results) == 0 {
		bufWriter.WriteString("[]\n") // nolint: errcheck

		return flushJSON(bufWriter)
	}

	bufWriter.WriteString("[\n") // nolint: errcheck

	for i := range results {
		buf.Reset()

		var err error

		if failure := results[i].Failure; failure != nil {
			err = encoder.Encode(jsonFailure{
				IP:    failure.IP,
				Error: failure.Reason.String(),
			})
		} else {
			err = encoder.Encode(&results[i].Record)
		}

		if err != nil {
			return fmt.Errorf("cannot encode result %d: %w", results[i].Index, err)
		}

		bufWriter.WriteString(jsonIndent)                    // nolint: errcheck
		bufWriter.Write(bytes.TrimRight(buf.Bytes(), "\n")) // nolint: errcheck

		if i < len(results)-1 {
			bufWriter.WriteByte(',') // nolint: errcheck
		}

		bufWriter.WriteByte('\n') // nolint: errcheck
	}

	bufWriter.WriteString("]\n") // nolint: errcheck

	return flushJSON(bufWriter)
}

func flushJSON(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot flush json: %w", err)
	}

	return nil
}
