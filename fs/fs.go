// Package fs provides file-based storage for document sets and the result cache.
// Every write goes to a temporary file in the target directory that is then
// renamed over the destination, so readers never see a partial file.
package fs

import (
	"os"
	"path/filepath"
)

// writeAtomic writes data to path via a temporary file and rename.
// The parent directory is created if needed.
func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
