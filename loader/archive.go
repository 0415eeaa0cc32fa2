package loader

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// readMaybeCompressed reads a report file, transparently decompressing
// .gz, .xz and .zip drops. Regulatory file transfers routinely arrive
// compressed; anything else is read as-is.
func readMaybeCompressed(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return readGzip(path)
	case ".xz":
		return readXz(path)
	case ".zip":
		return readZip(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read report file: %w", err)
		}
		return data, nil
	}
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gzip report: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress gzip report: %w", err)
	}
	return data, nil
}

func readXz(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xz report: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}

	data, err := io.ReadAll(xr)
	if err != nil {
		return nil, fmt.Errorf("decompress xz report: %w", err)
	}
	return data, nil
}

// readZip extracts the archive to a scratch directory and reads the
// single CSV it must contain.
func readZip(path string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "forward415-zip-")
	if err != nil {
		return nil, fmt.Errorf("scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract zip report: %w", err)
	}

	var csvPath string
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.EqualFold(filepath.Ext(p), ".csv") {
			if csvPath != "" {
				return fmt.Errorf("zip report contains more than one CSV")
			}
			csvPath = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if csvPath == "" {
		return nil, fmt.Errorf("zip report contains no CSV")
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		return nil, fmt.Errorf("read extracted report: %w", err)
	}
	return data, nil
}
