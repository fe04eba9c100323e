package exporters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/9seconds/geobatch/batchlib"
)

// OutputTempPrefix is a prefix of temporary files which are populated
// during export.
//
// It works in a following way:
//  1. Before any lookup is done, a temporary file is created next to
//     the destination. If it is impossible, the destination is not
//     writable and the whole run fails early.
//  2. Exporter writes into the temporary file.
//  3. On success, the temporary file is renamed into the destination.
//     On any failure it is removed, so partial output never appears.
const OutputTempPrefix = ".geobatch_tmp_"

// OutputFileMode is a mode of committed files. Temporary files are
// created as 0600.
const OutputFileMode os.FileMode = 0644

var errOutputFileClosed = errors.New("output file is already closed")

// OutputFile is a destination file which appears only on Commit.
type OutputFile struct {
	fs   afero.Fs
	path string
	tmp  afero.File
}

func (o *OutputFile) Path() string {
	return o.path
}

func (o *OutputFile) Write(p []byte) (int, error) {
	if o.tmp == nil {
		return 0, errOutputFileClosed
	}

	return o.tmp.Write(p)
}

// Commit moves written content to the destination path.
func (o *OutputFile) Commit() error {
	if o.tmp == nil {
		return errOutputFileClosed
	}

	tmpName := o.tmp.Name()

	if err := o.tmp.Sync(); err != nil {
		o.Discard() // nolint: errcheck

		return fmt.Errorf("cannot sync output file: %w", err)
	}

	if err := o.tmp.Close(); err != nil {
		o.tmp = nil
		o.fs.Remove(tmpName) // nolint: errcheck

		return fmt.Errorf("cannot close output file: %w", err)
	}

	o.tmp = nil

	if err := o.fs.Chmod(tmpName, OutputFileMode); err != nil {
		o.fs.Remove(tmpName) // nolint: errcheck

		return fmt.Errorf("cannot change mode of %s: %w", tmpName, err)
	}

	if err := o.fs.Rename(tmpName, o.path); err != nil {
		o.fs.Remove(tmpName) // nolint: errcheck

		return fmt.Errorf("cannot rename %s to %s: %w", tmpName, o.path, err)
	}

	return nil
}

// Discard drops everything written so far. It is ok to call it after
// Commit, it does nothing then.
func (o *OutputFile) Discard() error {
	if o.tmp == nil {
		return nil
	}

	tmpName := o.tmp.Name()

	o.tmp.Close() // nolint: errcheck
	o.tmp = nil

	if err := o.fs.Remove(tmpName); err != nil {
		return fmt.Errorf("cannot remove %s: %w", tmpName, err)
	}

	return nil
}

// CreateOutputFile checks that a destination is writable and prepares
// a temporary file for it. Problems are *batchlib.ConfigurationError.
func CreateOutputFile(fs afero.Fs, path string) (*OutputFile, error) {
	if stat, err := fs.Stat(path); err == nil && stat.IsDir() {
		return nil, batchlib.NewConfigurationError("cannot write output to "+path,
			errors.New("it is a directory"))
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), OutputTempPrefix+filepath.Base(path)+"_")
	if err != nil {
		return nil, batchlib.NewConfigurationError("cannot write output to "+path, err)
	}

	return &OutputFile{
		fs:   fs,
		path: path,
		tmp:  tmp,
	}, nil
}
