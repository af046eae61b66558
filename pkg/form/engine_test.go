package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/schema"
)

var fixedNow = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

type note struct {
	Level   form.Level
	Message string
}

type recorder struct {
	mu    sync.Mutex
	notes []note
}

func (r *recorder) Notify(level form.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{Level: level, Message: message})
}

func (r *recorder) all() []note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]note(nil), r.notes...)
}

type apiError struct{ msg string }

func (e apiError) Error() string       { return "api: " + e.msg }
func (e apiError) UserMessage() string { return e.msg }

func newEngine(t *testing.T, id string, opts ...form.Option) *form.Engine {
	t.Helper()
	store, err := schema.Default()
	if err != nil {
		t.Fatalf("load schemas: %v", err)
	}
	opts = append([]form.Option{form.WithClock(func() time.Time { return fixedNow })}, opts...)
	engine, err := form.New(store.MustSchema(id), opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func validFIR() map[string]any {
	return map[string]any{
		"district":               "Pune",
		"policeStation":          "Station A",
		"act":                    "IPC",
		"ipcSections":            []string{"420"},
		"generalDiaryRef":        "GD/2024-15",
		"infoType":               "Victim Informed",
		"placeOccurrence":        "Market road",
		"complainantName":        "Asha Patil",
		"complainantDob":         "1990-01-01",
		"complainantNationality": "Indian",
		"complainantAadhaar":     "123456789012",
		"complainantOccupation":  "Teacher",
		"complainantMobile":      "9876543210",
		"complainantAddress":     "12 MG Road, Pune",
		"suspectName":            "Unknown",
		"suspectAddress":         "Unknown",
		"enquiryOfficerName":     "R. Shinde",
		"enquiryOfficerRank":     "PSI",
	}
}

func TestTouchField_ValidatesAndClears(t *testing.T) {
	engine := newEngine(t, schema.FIR)

	must(t, engine.SetField("complainantMobile", "98765432a1"))
	if got := engine.VisibleError("complainantMobile"); got != "" {
		t.Fatalf("untouched field should not show errors, got %q", got)
	}
	must(t, engine.TouchField("complainantMobile"))
	if got := engine.VisibleError("complainantMobile"); got != "Invalid mobile number" {
		t.Fatalf("expected mobile error, got %q", got)
	}
	if engine.Valid("complainantMobile") {
		t.Fatalf("field with error must not be valid")
	}

	must(t, engine.SetField("complainantMobile", "9876543210"))
	must(t, engine.TouchField("complainantMobile"))
	if got := engine.VisibleError("complainantMobile"); got != "" {
		t.Fatalf("expected error cleared, got %q", got)
	}
	if !engine.Valid("complainantMobile") {
		t.Fatalf("expected valid state after correction")
	}
}

func TestSetField_OptimisticClear(t *testing.T) {
	engine := newEngine(t, schema.FIR)

	must(t, engine.SetField("complainantAadhaar", "12345"))
	must(t, engine.TouchField("complainantAadhaar"))
	if got := engine.Errors()["complainantAadhaar"]; got != "Aadhaar must be 12 digits" {
		t.Fatalf("expected aadhaar error, got %q", got)
	}

	// still invalid, but the error is cleared until the next touch
	must(t, engine.SetField("complainantAadhaar", "123"))
	if _, ok := engine.Errors()["complainantAadhaar"]; ok {
		t.Fatalf("SetField must clear the existing error")
	}
	must(t, engine.TouchField("complainantAadhaar"))
	if got := engine.Errors()["complainantAadhaar"]; got != "Aadhaar must be 12 digits" {
		t.Fatalf("expected error after re-touch, got %q", got)
	}
}

func TestTouchField_SetFieldsWaitForSubmit(t *testing.T) {
	engine := newEngine(t, schema.FIR)

	must(t, engine.TouchField("ipcSections"))
	if !engine.Touched("ipcSections") {
		t.Fatalf("expected ipcSections touched")
	}
	if _, ok := engine.Errors()["ipcSections"]; ok {
		t.Fatalf("checkbox groups must not validate on touch")
	}

	engine.ValidateAll()
	if got := engine.Errors()["ipcSections"]; got != "At least one IPC section must be selected" {
		t.Fatalf("expected ipc error from ValidateAll, got %q", got)
	}

	must(t, engine.ToggleOption("ipcSections", "420"))
	if _, ok := engine.Errors()["ipcSections"]; ok {
		t.Fatalf("toggle must clear the existing error")
	}
	must(t, engine.ToggleOption("ipcSections", "302"))
	must(t, engine.ToggleOption("ipcSections", "420"))
	if diff := cmp.Diff([]string{"302"}, engine.Value("ipcSections")); diff != "" {
		t.Fatalf("ipc selection mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleOption_Errors(t *testing.T) {
	engine := newEngine(t, schema.FIR)

	if err := engine.ToggleOption("district", "x"); !errors.Is(err, form.ErrNotToggle) {
		t.Fatalf("expected ErrNotToggle, got %v", err)
	}
	if err := engine.ToggleOption("ipcSections", "999"); !errors.Is(err, form.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if err := engine.SetField("nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := engine.TouchField("nope"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestConfirmPassword_RevalidatesWithPassword(t *testing.T) {
	engine := newEngine(t, schema.Registration)

	must(t, engine.SetField("password", "Secret123"))
	must(t, engine.TouchField("password"))
	must(t, engine.SetField("confirmPassword", "Secret123"))
	must(t, engine.TouchField("confirmPassword"))
	if got := engine.VisibleError("confirmPassword"); got != "" {
		t.Fatalf("expected matching passwords, got %q", got)
	}

	must(t, engine.SetField("password", "Secret124"))
	must(t, engine.TouchField("password"))
	if got := engine.VisibleError("confirmPassword"); got != "Passwords do not match" {
		t.Fatalf("expected confirmPassword to fail after password change, got %q", got)
	}

	must(t, engine.SetField("confirmPassword", "Secret124"))
	must(t, engine.TouchField("confirmPassword"))
	if got := engine.VisibleError("confirmPassword"); got != "" {
		t.Fatalf("expected match, got %q", got)
	}
}

func TestValidateAll_Idempotent(t *testing.T) {
	engine := newEngine(t, schema.Registration)
	must(t, engine.SetField("firstName", "A"))
	must(t, engine.SetField("email", "nope"))

	first := engine.ValidateAll()
	firstErrors := engine.Errors()
	second := engine.ValidateAll()
	if first != second {
		t.Fatalf("verdict changed between runs")
	}
	if diff := cmp.Diff(firstErrors, engine.Errors()); diff != "" {
		t.Fatalf("errors changed between runs (-first +second):\n%s", diff)
	}
	if firstErrors["firstName"] != "First name must be at least 2 characters" {
		t.Fatalf("unexpected firstName error %q", firstErrors["firstName"])
	}
	if _, ok := firstErrors["middleName"]; ok {
		t.Fatalf("empty optional middleName must be valid")
	}
}

func TestValidateAll_IgnoresTouchedSet(t *testing.T) {
	engine := newEngine(t, schema.Login)
	if engine.ValidateAll() {
		t.Fatalf("empty login form must be invalid")
	}
	want := map[string]string{
		"email":    "Email is required",
		"password": "Password is required",
		"captcha":  "Captcha is required",
	}
	if diff := cmp.Diff(want, engine.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if engine.VisibleError("email") != "" {
		t.Fatalf("ValidateAll must not touch fields")
	}
}

func TestSubmit_InvalidNeverCallsSubmitter(t *testing.T) {
	notes := &recorder{}
	called := false
	engine := newEngine(t, schema.FIR,
		form.WithNotifier(notes),
		form.WithSubmitter(form.SubmitterFunc(func(context.Context, map[string]any) (form.Outcome, error) {
			called = true
			return form.Outcome{}, nil
		})),
	)
	engine.Prefill(validFIR())
	must(t, engine.SetField("ipcSections", []string{}))

	err := engine.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if called {
		t.Fatalf("submitter must not run for an invalid form")
	}
	if got := engine.VisibleError("ipcSections"); got != "At least one IPC section must be selected" {
		t.Fatalf("submit must touch every field, got %q", got)
	}
	want := []note{{Level: form.LevelError, Message: "Please fix the errors in the form"}}
	if diff := cmp.Diff(want, notes.all()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_Success(t *testing.T) {
	notes := &recorder{}
	var got map[string]any
	var outcome form.Outcome
	engine := newEngine(t, schema.FIR,
		form.WithNotifier(notes),
		form.WithSubmitter(form.SubmitterFunc(func(_ context.Context, values map[string]any) (form.Outcome, error) {
			got = values
			return form.Outcome{Payload: map[string]any{"id": "42"}}, nil
		})),
		form.OnSuccess(func(o form.Outcome) { outcome = o }),
	)
	engine.Prefill(validFIR())

	if err := engine.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(validFIR(), got); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if outcome.String("id") != "42" {
		t.Fatalf("success hook not called with outcome: %#v", outcome)
	}
	want := []note{{Level: form.LevelSuccess, Message: "FIR created successfully"}}
	if diff := cmp.Diff(want, notes.all()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if !engine.Closed() || len(engine.Values()) != 0 {
		t.Fatalf("state must be discarded after success")
	}
}

func TestSubmit_FailurePreservesState(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", apiError{msg: "Duplicate FIR"}, "Duplicate FIR"},
		{"generic fallback", errors.New("dial tcp: refused"), "Error submitting form"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notes := &recorder{}
			var failure error
			engine := newEngine(t, schema.FIR,
				form.WithNotifier(notes),
				form.WithSubmitter(form.SubmitterFunc(func(context.Context, map[string]any) (form.Outcome, error) {
					return form.Outcome{}, tc.err
				})),
				form.OnFailure(func(err error) { failure = err }),
			)
			engine.Prefill(validFIR())

			err := engine.Submit(context.Background())
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected wrapped collaborator error, got %v", err)
			}
			if !errors.Is(failure, tc.err) {
				t.Fatalf("failure hook not called: %v", failure)
			}
			if diff := cmp.Diff([]note{{Level: form.LevelError, Message: tc.want}}, notes.all()); diff != "" {
				t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(validFIR(), engine.Values()); diff != "" {
				t.Fatalf("state must survive failure (-want +got):\n%s", diff)
			}
			if engine.Submitting() {
				t.Fatalf("submitting flag must reset")
			}
		})
	}
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	release := make(chan struct{})
	engine := newEngine(t, schema.FIR,
		form.WithSubmitter(form.SubmitterFunc(func(context.Context, map[string]any) (form.Outcome, error) {
			close(started)
			<-release
			return form.Outcome{}, nil
		})),
	)
	engine.Prefill(validFIR())

	done := make(chan error, 1)
	go func() { done <- engine.Submit(context.Background()) }()
	<-started

	if !engine.Submitting() {
		t.Fatalf("expected submitting flag while in flight")
	}
	if err := engine.Submit(context.Background()); !errors.Is(err, form.ErrSubmitting) {
		t.Fatalf("expected ErrSubmitting, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestClose_DiscardsInFlightResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	notes := &recorder{}
	started := make(chan struct{})
	hooks := 0
	engine := newEngine(t, schema.FIR,
		form.WithNotifier(notes),
		form.WithSubmitter(form.SubmitterFunc(func(ctx context.Context, _ map[string]any) (form.Outcome, error) {
			close(started)
			<-ctx.Done()
			return form.Outcome{}, ctx.Err()
		})),
		form.OnSuccess(func(form.Outcome) { hooks++ }),
		form.OnFailure(func(error) { hooks++ }),
	)
	engine.Prefill(validFIR())

	done := make(chan error, 1)
	go func() { done <- engine.Submit(context.Background()) }()
	<-started
	engine.Close()

	if err := <-done; !errors.Is(err, form.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if hooks != 0 {
		t.Fatalf("hooks must not run after close")
	}
	if len(notes.all()) != 0 {
		t.Fatalf("no notification expected after close, got %#v", notes.all())
	}
	if err := engine.SetField("district", "x"); !errors.Is(err, form.ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
}

func TestPrefill_SkipsValidation(t *testing.T) {
	engine := newEngine(t, schema.FIR)
	values := validFIR()
	values["complainantAadhaar"] = "12"
	values["unknown"] = "ignored"
	engine.Prefill(values)

	if len(engine.Errors()) != 0 {
		t.Fatalf("prefill must not validate: %#v", engine.Errors())
	}
	if _, ok := engine.Values()["unknown"]; ok {
		t.Fatalf("unknown keys must be ignored")
	}
	must(t, engine.TouchField("complainantAadhaar"))
	if engine.VisibleError("complainantAadhaar") == "" {
		t.Fatalf("touching a prefilled invalid value should validate it")
	}
}

func TestLoginCaptcha_UsesEnvironment(t *testing.T) {
	engine := newEngine(t, schema.Login)
	engine.SetEnv("captcha", "X7K2P")

	must(t, engine.SetField("captcha", "x7k2p"))
	must(t, engine.TouchField("captcha"))
	if got := engine.VisibleError("captcha"); got != "Incorrect captcha" {
		t.Fatalf("expected captcha mismatch, got %q", got)
	}

	engine.SetEnv("captcha", "")
	must(t, engine.TouchField("captcha"))
	if got := engine.VisibleError("captcha"); got != "" {
		t.Fatalf("unknown challenge must accept input, got %q", got)
	}

	must(t, engine.TouchField("rememberMe"))
	if _, ok := engine.Errors()["rememberMe"]; ok {
		t.Fatalf("boolean fields do not validate on touch")
	}
}

func TestNew_RejectsBrokenSchema(t *testing.T) {
	_, err := form.New(model.FormSchema{ID: "broken"})
	if err == nil {
		t.Fatalf("expected error for schema without fields")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
