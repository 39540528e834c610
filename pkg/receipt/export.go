package receipt

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Export renders b into dir as receipt-<id>.<ext> and returns the path.
// Readers never observe a partially written file.
func Export(fs afero.Fs, dir string, b Bundle, f Format) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b, f); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("receipt-%s.%s", b.ID, f.Ext()))
	if err := writeFileAtomic(fs, path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".receipt-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming receipt into %s: %w", path, err)
	}
	return nil
}
