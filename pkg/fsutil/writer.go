package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// WriteFileAtomic replaces path with data by writing a temporary file in the same
// directory and renaming it over the original. The original's permission bits are kept;
// a new file gets perm.
//
// Files that are bind mounts, such as /etc/hosts inside a container, cannot be renamed
// over. For those the content is written in place instead.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if path == "" {
		return ErrEmptyOutputPath
	}

	path = filepath.Clean(path)

	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	err = os.Rename(tmpName, path)
	if errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EXDEV) {
		return writeInPlace(path, data, perm)
	}

	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func writeInPlace(path string, data []byte, perm fs.FileMode) error {
	err := os.WriteFile(path, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
