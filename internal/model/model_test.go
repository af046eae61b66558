package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"complainantDob":   "Complainant Dob",
		"first_name":       "First Name",
		"ipc-sections":     "Ipc Sections",
		"address2":         "Address 2",
		"enquiryOfficerID": "Enquiry Officer Id",
		"":                 "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("label %q: want %q got %q", input, want, got)
		}
	}
}

func TestField_Interactive(t *testing.T) {
	cases := map[FieldType]bool{
		FieldTypeString:  true,
		FieldTypeDate:    true,
		FieldTypeSelect:  true,
		FieldTypeFile:    true,
		FieldTypeBoolean: false,
		FieldTypeSet:     false,
	}
	for typ, want := range cases {
		if got := (Field{Name: "f", Type: typ}).Interactive(); got != want {
			t.Fatalf("%s: want interactive=%v got %v", typ, want, got)
		}
	}
}

func TestValidateSchema(t *testing.T) {
	base := func() FormSchema {
		return FormSchema{
			ID: "sample",
			Fields: []Field{
				{Name: "password", Type: FieldTypeString},
				{Name: "confirm", Type: FieldTypeString, Validations: []ValidationRule{
					{Kind: ValidationRuleEqualsField, Params: map[string]string{"field": "password"}, Message: "mismatch"},
				}},
				{Name: "station", Type: FieldTypeSelect, Options: []string{"A"}},
			},
		}
	}

	if err := ValidateSchema(base()); err != nil {
		t.Fatalf("expected valid schema, got %v", err)
	}

	cases := map[string]struct {
		mutate func(*FormSchema)
		want   string
	}{
		"missing id":      {func(s *FormSchema) { s.ID = "" }, "schema id is required"},
		"no fields":       {func(s *FormSchema) { s.Fields = nil }, "declares no fields"},
		"duplicate":       {func(s *FormSchema) { s.Fields[1].Name = "password" }, "duplicate field"},
		"unknown type":    {func(s *FormSchema) { s.Fields[0].Type = "object" }, "unknown field type"},
		"select options":  {func(s *FormSchema) { s.Fields[2].Options = nil }, "requires options"},
		"no message":      {func(s *FormSchema) { s.Fields[1].Validations[0].Message = "" }, "requires a message"},
		"dangling field":  {func(s *FormSchema) { s.Fields[1].Validations[0].Params["field"] = "nope" }, "unknown field"},
		"bad pattern": {func(s *FormSchema) {
			s.Fields[0].Validations = []ValidationRule{{Kind: ValidationRulePattern, Params: map[string]string{"pattern": "("}, Message: "x"}}
		}, "pattern"},
		"bad threshold": {func(s *FormSchema) {
			s.Fields[0].Validations = []ValidationRule{{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "eight"}, Message: "x"}}
		}, "must be an integer"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			schema := base()
			tc.mutate(&schema)
			err := ValidateSchema(schema)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestOpenFileRef_SniffsContentType(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "photo.png")
	data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	if err := os.WriteFile(png, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ref, err := OpenFileRef(png)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ref.ContentType != "image/png" || ref.Size != int64(len(data)) || ref.Name != "photo.png" {
		t.Fatalf("unexpected ref: %#v", ref)
	}

	if _, err := OpenFileRef(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
	if _, err := OpenFileRef(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
