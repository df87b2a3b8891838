// Package fs provides file-based loading of URL lists and writing of
// report exports.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/pricescout"
)

// ReadURLList reads a newline-delimited URL list file.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pricescout.Errorf(pricescout.EINVALID, "URL list %s does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	urls, err := pricescout.ParseURLList(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return urls, nil
}

// WriteFileAtomic writes to path.tmp through write and renames it to path
// once write succeeds, so readers never observe a partial file.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
