package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/validation"
)

// Upload is a multipart request: text fields plus files read from disk.
type Upload struct {
	Fields map[string]string
	Files  map[string]model.FileRef
}

// UploadFromValues converts form state into an Upload. Booleans and sets are
// skipped; with skipEmpty, blank text fields and unselected files are left
// out. Names in exclude are never sent.
func UploadFromValues(values map[string]any, skipEmpty bool, exclude ...string) Upload {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	up := Upload{Fields: map[string]string{}, Files: map[string]model.FileRef{}}
	for name, value := range values {
		if skip[name] {
			continue
		}
		switch value.(type) {
		case model.FileRef, *model.FileRef:
			if ref, ok := validation.File(value); ok {
				up.Files[name] = ref
			}
			continue
		case bool, []string:
			continue
		}
		text := strings.TrimSpace(validation.Text(value))
		if skipEmpty && text == "" {
			continue
		}
		up.Fields[name] = text
	}
	return up
}

func (u Upload) body() (*requestBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range sortedKeys(u.Fields) {
		if err := w.WriteField(name, u.Fields[name]); err != nil {
			return nil, fmt.Errorf("backend: multipart field %s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(u.Files) {
		if err := writeFile(w, name, u.Files[name]); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("backend: multipart close: %w", err)
	}
	return &requestBody{reader: &buf, contentType: w.FormDataContentType()}, nil
}

func writeFile(w *multipart.Writer, field string, ref model.FileRef) error {
	file, err := os.Open(ref.Path)
	if err != nil {
		return fmt.Errorf("backend: open upload %s: %w", ref.Name, err)
	}
	defer file.Close()

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, ref.Name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("backend: multipart file %s: %w", field, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("backend: copy upload %s: %w", ref.Name, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
