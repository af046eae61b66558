package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-firform/pkg/model"
)

// Store holds form schemas keyed by schema id.
type Store struct {
	schemas map[string]model.FormSchema
	sources map[string]string
}

// LoadFS walks the provided filesystem and parses every JSON/YAML schema file.
// Each file holds one schema. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		schemas: make(map[string]model.FormSchema),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		parsed, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		id := strings.TrimSpace(parsed.ID)
		if id == "" {
			return fmt.Errorf("schema: file %s defines an empty schema id", path)
		}
		if previous, exists := store.sources[id]; exists {
			return fmt.Errorf("schema: duplicate schema %q (files %s and %s)", id, previous, path)
		}
		parsed.ID = id

		if err := model.ValidateSchema(parsed); err != nil {
			return fmt.Errorf("schema: file %s: %w", path, err)
		}

		store.schemas[id] = parsed
		store.sources[id] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Schema returns the schema registered under id.
func (s *Store) Schema(id string) (model.FormSchema, bool) {
	if s == nil {
		return model.FormSchema{}, false
	}
	schema, ok := s.schemas[id]
	return schema, ok
}

// MustSchema is Schema for wiring code where a missing schema is a build bug.
func (s *Store) MustSchema(id string) model.FormSchema {
	schema, ok := s.Schema(id)
	if !ok {
		panic(fmt.Sprintf("schema: %q not registered", id))
	}
	return schema
}

// IDs lists registered schema ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.schemas))
	for id := range s.schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any schemas.
func (s *Store) Empty() bool {
	return s == nil || len(s.schemas) == 0
}

func parseDocument(data []byte, source string) (model.FormSchema, error) {
	var doc model.FormSchema
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormSchema{}, fmt.Errorf("schema: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return model.FormSchema{}, fmt.Errorf("schema: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.FormSchema{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return doc, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
