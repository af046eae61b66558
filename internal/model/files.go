package model

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// OpenFileRef stats path and sniffs its content type from the first 512
// bytes.
func OpenFileRef(path string) (FileRef, error) {
	if path == "" {
		return FileRef{}, errors.New("model: file path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return FileRef{}, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return FileRef{}, fmt.Errorf("model: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileRef{}, fmt.Errorf("model: %s is a directory", path)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FileRef{}, fmt.Errorf("model: read %s: %w", path, err)
	}

	return FileRef{
		Name:        filepath.Base(path),
		Path:        path,
		Size:        info.Size(),
		ContentType: http.DetectContentType(head[:n]),
	}, nil
}
