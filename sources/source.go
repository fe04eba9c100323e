package sources

import (
	"bufio"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"

	"github.com/9seconds/geobatch/batchlib"
)

// MaxLineLength limits a single line of the input file. Longer lines
// are cut to this length and the rest is dropped: such line can not be
// an address anyway, so it still gets its entry and fails to resolve.
const MaxLineLength = 64 * 1024

// Source yields explicit addresses first and then lines of the input
// file. Blank entries are skipped and do not consume an index, anything
// else is passed as is.
type Source struct {
	addresses []string
	file      afero.File
	reader    *bufio.Reader
	nextIndex uint64
}

// Next implements batchlib.Source.
func (s *Source) Next() (batchlib.AddressEntry, error) {
	for len(s.addresses) > 0 {
		raw := strings.TrimSpace(s.addresses[0])
		s.addresses = s.addresses[1:]

		if raw != "" {
			return s.makeEntry(raw), nil
		}
	}

	for s.reader != nil {
		line, cut, err := s.readLine()

		switch {
		case err == io.EOF:
			s.reader = nil
		case err != nil:
			return batchlib.AddressEntry{}, errors.Annotate(err, "cannot read input file")
		}

		if raw := strings.TrimSpace(line); raw != "" || cut {
			return s.makeEntry(raw), nil
		}
	}

	return batchlib.AddressEntry{}, io.EOF
}

// readLine returns at most MaxLineLength bytes of the next line. cut
// is true if the rest of the line was dropped.
func (s *Source) readLine() (string, bool, error) {
	chunk, err := s.reader.ReadSlice('\n')
	line := string(chunk)
	cut := false

	for err == bufio.ErrBufferFull {
		cut = true
		_, err = s.reader.ReadSlice('\n')
	}

	return line, cut, err
}

// Close releases the input file. It is safe to call it many times.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	s.reader = nil

	return errors.Annotate(err, "cannot close input file")
}

func (s *Source) makeEntry(raw string) batchlib.AddressEntry {
	rv := batchlib.AddressEntry{
		Index: s.nextIndex,
		Raw:   raw,
	}
	s.nextIndex++

	return rv
}

// New prepares a source from explicit addresses and an optional input
// file. An input file which cannot be opened is a
// *batchlib.ConfigurationError.
func New(fs afero.Fs, addresses []string, inputFile string) (*Source, error) {
	rv := &Source{
		addresses: append([]string(nil), addresses...),
	}

	if inputFile == "" {
		return rv, nil
	}

	stat, err := fs.Stat(inputFile)
	if err != nil {
		return nil, batchlib.NewConfigurationError("cannot read input file "+inputFile,
			errors.Annotate(err, "stat failed"))
	}

	if stat.IsDir() {
		return nil, batchlib.NewConfigurationError("cannot read input file "+inputFile,
			errors.New("it is a directory"))
	}

	file, err := fs.Open(inputFile)
	if err != nil {
		return nil, batchlib.NewConfigurationError("cannot read input file "+inputFile,
			errors.Annotate(err, "open failed"))
	}

	rv.file = file
	rv.reader = bufio.NewReaderSize(file, MaxLineLength)

	return rv, nil
}
