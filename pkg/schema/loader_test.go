package schema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/schema"
)

func TestDefault_LoadsBuiltInForms(t *testing.T) {
	store, err := schema.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	want := []string{schema.FIR, schema.Login, schema.Profile, schema.Registration}
	if diff := cmp.Diff(want, store.IDs()); diff != "" {
		t.Fatalf("schema ids mismatch (-want +got):\n%s", diff)
	}

	fir := store.MustSchema(schema.FIR)
	if got := len(fir.Fields); got != 18 {
		t.Fatalf("expected 18 fir fields, got %d", got)
	}
	ipc, ok := fir.Field("ipcSections")
	if !ok {
		t.Fatalf("ipcSections missing")
	}
	if ipc.Type != model.FieldTypeSet || ipc.Interactive() {
		t.Fatalf("ipcSections should be a non-interactive set: %#v", ipc)
	}
	if diff := cmp.Diff([]string{"1860", "373", "353", "420", "302"}, ipc.Options); diff != "" {
		t.Fatalf("ipc options mismatch (-want +got):\n%s", diff)
	}

	mobile, _ := fir.Field("complainantMobile")
	if len(mobile.Validations) != 1 || mobile.Validations[0].Params["pattern"] != `^[6-9]\d{9}$` {
		t.Fatalf("complainantMobile pattern not decoded: %#v", mobile.Validations)
	}

	reg := store.MustSchema(schema.Registration)
	middle, _ := reg.Field("middleName")
	if middle.Required {
		t.Fatalf("middleName must be optional")
	}
	confirm, _ := reg.Field("confirmPassword")
	if confirm.Validations[0].Params["field"] != "password" {
		t.Fatalf("confirmPassword should reference password: %#v", confirm.Validations)
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"id":"alpha","fields":[{"name":"title","type":"string","required":true}]}`)},
		"nested/b.yml": {Data: []byte("id: beta\nfields:\n  - name: flag\n    type: boolean\n")},
		"README.md":    {Data: []byte("ignored")},
	}

	store, err := schema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	beta, _ := store.Schema("beta")
	if beta.Fields[0].Type != model.FieldTypeBoolean {
		t.Fatalf("beta field type mismatch: %#v", beta.Fields[0])
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]struct {
		files fstest.MapFS
		want  string
	}{
		"duplicate id": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("id: dup\nfields:\n  - {name: a, type: string}\n")},
				"b.yaml": {Data: []byte("id: dup\nfields:\n  - {name: b, type: string}\n")},
			},
			want: "duplicate schema",
		},
		"empty file": {
			files: fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			want:  "is empty",
		},
		"missing id": {
			files: fstest.MapFS{"a.yaml": {Data: []byte("fields:\n  - {name: a, type: string}\n")}},
			want:  "empty schema id",
		},
		"unknown rule": {
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n    type: string\n    validations:\n      - {kind: luhn, message: bad}\n")}},
			want:  "unknown rule kind",
		},
		"dangling equalsField": {
			files: fstest.MapFS{"a.yaml": {Data: []byte("id: x\nfields:\n  - name: a\n    type: string\n    validations:\n      - kind: equalsField\n        params: {field: nope}\n        message: bad\n")}},
			want:  "unknown field",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schema.LoadFS(tc.files)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := schema.LoadFS(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
