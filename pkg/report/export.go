package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-firform/pkg/fir"
)

// ErrNoData is returned by exports that need at least one record.
var ErrNoData = errors.New("report: no data to export")

// Format selects an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatXLSX, FormatPDF:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("report: unsupported export format %q", raw)
	}
}

// ExportFile writes records in format under dir, using the configured file
// name, and returns the written path.
func ExportFile(dir string, format Format, records []fir.Record, opts Options) (string, error) {
	name := opts.XLSXFile
	var write writerFunc = WriteXLSX
	if format == FormatPDF {
		name = opts.PDFFile
		write = WritePDF
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := write(file, records, opts); err != nil {
		file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("report: close %s: %w", path, err)
	}
	return path, nil
}

type writerFunc func(io.Writer, []fir.Record, Options) error
