package validation_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/schema"
	"github.com/goliatone/go-firform/pkg/validation"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func compile(t *testing.T, id string) *validation.RuleSet {
	t.Helper()
	store, err := schema.Default()
	if err != nil {
		t.Fatalf("load schemas: %v", err)
	}
	rules, err := validation.Compile(store.MustSchema(id))
	if err != nil {
		t.Fatalf("compile %s: %v", id, err)
	}
	return rules
}

func check(rules *validation.RuleSet, name string, values map[string]any) string {
	return rules.Check(name, validation.Snapshot{Values: values, Now: fixedNow})
}

func TestFIRRules(t *testing.T) {
	rules := compile(t, schema.FIR)

	cases := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"mobile with letter", "complainantMobile", "98765432a1", "Invalid mobile number"},
		{"mobile valid", "complainantMobile", "9876543210", ""},
		{"mobile bad prefix", "complainantMobile", "5876543210", "Invalid mobile number"},
		{"mobile empty", "complainantMobile", "   ", "Mobile number is required"},
		{"aadhaar short", "complainantAadhaar", "12345", "Aadhaar must be 12 digits"},
		{"aadhaar valid", "complainantAadhaar", "123456789012", ""},
		{"ipc empty", "ipcSections", []string{}, "At least one IPC section must be selected"},
		{"ipc nil", "ipcSections", nil, "At least one IPC section must be selected"},
		{"ipc one", "ipcSections", []string{"420"}, ""},
		{"dob tomorrow", "complainantDob", "2024-03-16", "Date of birth must be in the past"},
		{"dob today", "complainantDob", "2024-03-15", "Date of birth must be in the past"},
		{"dob yesterday", "complainantDob", "2024-03-14", ""},
		{"dob valid", "complainantDob", "1990-01-01", ""},
		{"dob garbage", "complainantDob", "01/01/1990", "Date of birth must be in the past"},
		{"dob empty", "complainantDob", "", "Date of birth is required"},
		{"gd lowercase", "generalDiaryRef", "gd/12", "Invalid reference format"},
		{"gd valid", "generalDiaryRef", "GD/2024-15", ""},
		{"name short", "complainantName", "Al", "Name must be at least 3 characters"},
		{"address short", "complainantAddress", "Pune", "Address must be at least 10 characters"},
		{"station empty", "policeStation", "", "Police station is required"},
		{"rank set", "enquiryOfficerRank", "PSI", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := check(rules, tc.field, map[string]any{tc.field: tc.value})
			if got != tc.want {
				t.Fatalf("%s=%v: want %q got %q", tc.field, tc.value, tc.want, got)
			}
		})
	}
}

func TestRegistrationRules(t *testing.T) {
	rules := compile(t, schema.Registration)

	cases := []struct {
		name   string
		field  string
		values map[string]any
		want   string
	}{
		{"first name required", "firstName", map[string]any{"firstName": " "}, "First name is required"},
		{"first name short", "firstName", map[string]any{"firstName": "A"}, "First name must be at least 2 characters"},
		{"first name digits", "firstName", map[string]any{"firstName": "Ann3"}, "First name can only contain letters"},
		{"middle name optional", "middleName", map[string]any{}, ""},
		{"middle name short", "middleName", map[string]any{"middleName": "K"}, "Middle name must be at least 2 characters"},
		{"middle name symbols", "middleName", map[string]any{"middleName": "K-J"}, "Middle name can only contain letters"},
		{"mobile nine digits", "mobileNumber", map[string]any{"mobileNumber": "123456789"}, "Mobile number must be 10 digits"},
		{"mobile any leading digit", "mobileNumber", map[string]any{"mobileNumber": "1234567890"}, ""},
		{"email bad", "email", map[string]any{"email": "user@host"}, "Please enter a valid email address"},
		{"email good", "email", map[string]any{"email": "user@example.com"}, ""},
		{"password short", "password", map[string]any{"password": "Ab1"}, "Password must be at least 8 characters"},
		{"password no upper", "password", map[string]any{"password": "abcdefg1"}, "Password must contain uppercase, lowercase and numbers"},
		{"password no digit", "password", map[string]any{"password": "Abcdefgh"}, "Password must contain uppercase, lowercase and numbers"},
		{"password ok", "password", map[string]any{"password": "Abcdefg1"}, ""},
		{"password spaces count", "password", map[string]any{"password": " Abcdef1"}, ""},
		{"password only spaces", "password", map[string]any{"password": "   "}, "Password is required"},
		{"confirm trailing space", "confirmPassword", map[string]any{"password": "Abcdefg1 ", "confirmPassword": "Abcdefg1"}, "Passwords do not match"},
		{"confirm empty", "confirmPassword", map[string]any{"password": "Abcdefg1"}, "Please confirm your password"},
		{"confirm mismatch", "confirmPassword", map[string]any{"password": "Abcdefg1", "confirmPassword": "Abcdefg2"}, "Passwords do not match"},
		{"confirm match", "confirmPassword", map[string]any{"password": "Abcdefg1", "confirmPassword": "Abcdefg1"}, ""},
		{"photo missing", "photo", map[string]any{}, "Profile photo is required"},
		{"photo too big", "photo", map[string]any{"photo": model.FileRef{Name: "a.png", Size: 1048577, ContentType: "image/png"}}, "Photo must be under 1MB"},
		{"photo exact limit", "photo", map[string]any{"photo": model.FileRef{Name: "a.png", Size: 1048576, ContentType: "image/png"}}, ""},
		{"photo gif", "photo", map[string]any{"photo": model.FileRef{Name: "a.gif", Size: 10, ContentType: "image/gif"}}, "Only JPEG, JPG, PNG allowed"},
		{"photo jpeg pointer", "photo", map[string]any{"photo": &model.FileRef{Name: "a.jpg", Size: 10, ContentType: "image/jpeg"}}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := check(rules, tc.field, tc.values); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}

	if diff := cmp.Diff([]string{"confirmPassword"}, rules.Dependents("password")); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginCaptchaRule(t *testing.T) {
	rules := compile(t, schema.Login)

	snap := validation.Snapshot{Values: map[string]any{"captcha": "abc12"}, Now: fixedNow}
	if got := rules.Check("captcha", snap); got != "" {
		t.Fatalf("unknown challenge should accept any input, got %q", got)
	}

	snap.Env = map[string]string{"captcha": "ABC12"}
	if got := rules.Check("captcha", snap); got != "Incorrect captcha" {
		t.Fatalf("expected mismatch, got %q", got)
	}

	snap.Values["captcha"] = "ABC12"
	if got := rules.Check("captcha", snap); got != "" {
		t.Fatalf("expected match, got %q", got)
	}

	snap.Values["captcha"] = ""
	if got := rules.Check("captcha", snap); got != "Captcha is required" {
		t.Fatalf("expected required, got %q", got)
	}

	if got := rules.Check("password", validation.Snapshot{Values: map[string]any{"password": "x"}}); got != "" {
		t.Fatalf("login password only checks presence, got %q", got)
	}
}

func TestCheckAll_OrderAndDeterminism(t *testing.T) {
	rules := compile(t, schema.Login)
	snap := validation.Snapshot{Values: map[string]any{"email": "bad"}, Now: fixedNow}

	first := rules.CheckAll(snap)
	second := rules.CheckAll(snap)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ between runs (-first +second):\n%s", diff)
	}

	want := []validation.Issue{
		{Field: "email", Message: "Please enter a valid email address"},
		{Field: "password", Message: "Password is required"},
		{Field: "captcha", Message: "Captcha is required"},
	}
	if first.Valid {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff(want, first.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_DefaultRequiredMessage(t *testing.T) {
	rules, err := validation.Compile(model.FormSchema{
		ID:     "adhoc",
		Fields: []model.Field{{Name: "placeOfBirth", Type: model.FieldTypeString, Required: true}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := rules.Check("placeOfBirth", validation.Snapshot{}); got != "Place Of Birth is required" {
		t.Fatalf("unexpected default message %q", got)
	}
}

func TestToggle(t *testing.T) {
	set := validation.Toggle(nil, "420")
	set = validation.Toggle(set, "302")
	if diff := cmp.Diff([]string{"302", "420"}, set); diff != "" {
		t.Fatalf("toggle add mismatch (-want +got):\n%s", diff)
	}
	set = validation.Toggle(set, "420")
	if diff := cmp.Diff([]string{"302"}, set); diff != "" {
		t.Fatalf("toggle remove mismatch (-want +got):\n%s", diff)
	}
}
