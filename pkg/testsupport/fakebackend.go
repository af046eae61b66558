package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-firform/pkg/fir"
)

// FakeUser is a backend account.
type FakeUser struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Photo        string `json:"photo,omitempty"`
	Password     string `json:"-"`
}

// RecordedRequest is what the fake saw for one call.
type RecordedRequest struct {
	Method      string
	Path        string
	RequestID   string
	Auth        string
	ContentType string
	Body        []byte
	Form        map[string]string
	Files       map[string]string
	FileTypes   map[string]string
}

type failure struct {
	status int
	body   string
}

// FakeBackend is an in-memory FIR backend served over httptest.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	token     string
	captchas  int
	captcha   string
	users     map[string]*FakeUser
	current   string
	firs      []fir.Record
	nextID    int
	requests  []RecordedRequest
	failures  map[string]failure
	blockOnce map[string]chan struct{}
}

// NewFakeBackend starts a fake closed at test cleanup. One account exists:
// officer@example.test / Passw0rd!.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		token:     "fake-token",
		users:     make(map[string]*FakeUser),
		nextID:    1,
		failures:  make(map[string]failure),
		blockOnce: make(map[string]chan struct{}),
	}
	f.users["officer@example.test"] = &FakeUser{
		ID: 1, FirstName: "Ravi", LastName: "Kumar", Email: "officer@example.test",
		MobileNumber: "9876543210", Password: "Passw0rd!",
	}
	f.current = "officer@example.test"

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", f.register)
	mux.HandleFunc("GET /api/auth/captcha-text", f.captchaText)
	mux.HandleFunc("POST /api/auth/login", f.login)
	mux.HandleFunc("GET /api/auth/user", f.authed(f.profile))
	mux.HandleFunc("GET /api/auth/profile", f.authed(f.profile))
	mux.HandleFunc("PUT /api/auth/profile", f.authed(f.updateProfile))
	mux.HandleFunc("GET /api/fir", f.authed(f.listFIRs))
	mux.HandleFunc("POST /api/fir", f.authed(f.createFIR))
	mux.HandleFunc("GET /api/fir/{id}", f.authed(f.getFIR))
	mux.HandleFunc("PUT /api/fir/{id}", f.authed(f.updateFIR))
	mux.HandleFunc("DELETE /api/fir/{id}", f.authed(f.deleteFIR))

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the fake's base URL.
func (f *FakeBackend) URL() string { return f.Server.URL }

// Token is the bearer token login issues.
func (f *FakeBackend) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// SetToken changes the token login issues and authenticated calls expect.
func (f *FakeBackend) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// Captcha is the challenge most recently issued.
func (f *FakeBackend) Captcha() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captcha
}

// CaptchasIssued counts captcha-text calls.
func (f *FakeBackend) CaptchasIssued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captchas
}

// Fail makes the next call to method+path answer status with body.
func (f *FakeBackend) Fail(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, body: body}
}

// Block holds the next call to method+path until the returned func runs.
func (f *FakeBackend) Block(method, path string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.blockOnce[method+" "+path] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// SeedFIRs stores records, assigning ids when missing.
func (f *FakeBackend) SeedFIRs(records ...fir.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range records {
		f.storeLocked(r)
	}
}

// FIRs returns the stored records.
func (f *FakeBackend) FIRs() []fir.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fir.Record(nil), f.firs...)
}

// User returns the account for email.
func (f *FakeBackend) User(email string) (FakeUser, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return FakeUser{}, false
	}
	return *u, true
}

// Requests returns every recorded call.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent call to method+path.
func (f *FakeBackend) LastRequest(method, path string) (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if r := f.requests[i]; r.Method == method && r.Path == path {
			return r, true
		}
	}
	return RecordedRequest{}, false
}

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		rec := RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RequestID:   r.Header.Get("X-Request-ID"),
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		}
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		if strings.HasPrefix(rec.ContentType, "multipart/form-data") {
			if err := r.ParseMultipartForm(4 << 20); err == nil {
				rec.Form = make(map[string]string)
				rec.Files = make(map[string]string)
				rec.FileTypes = make(map[string]string)
				for k, v := range r.MultipartForm.Value {
					rec.Form[k] = v[0]
				}
				for k, v := range r.MultipartForm.File {
					rec.Files[k] = v[0].Filename
					rec.FileTypes[k] = v[0].Header.Get("Content-Type")
				}
			}
		}

		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		fail, failing := f.failures[key]
		delete(f.failures, key)
		block := f.blockOnce[key]
		delete(f.blockOnce, key)
		f.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			w.WriteHeader(fail.status)
			_, _ = io.WriteString(w, fail.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		want := "Bearer " + f.token
		f.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (f *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	form := r.MultipartForm
	if form == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Expected multipart form"})
		return
	}
	value := func(k string) string {
		if v := form.Value[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	email := value("email")

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already registered"})
		return
	}
	photo := ""
	if files := form.File["photo"]; len(files) > 0 {
		photo = files[0].Filename
	}
	f.users[email] = &FakeUser{
		ID: len(f.users) + 1, FirstName: value("firstName"), MiddleName: value("middleName"),
		LastName: value("lastName"), Email: email, MobileNumber: value("mobileNumber"),
		Password: value("password"), Photo: photo,
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (f *FakeBackend) captchaText(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.captchas++
	f.captcha = fmt.Sprintf("CAP%d", f.captchas)
	text := f.captcha
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"captchaText": text})
}

func (f *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Captcha  string `json:"captcha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.captcha == "" || body.Captcha != f.captcha {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid captcha"})
		return
	}
	user, ok := f.users[body.Email]
	if !ok || user.Password != body.Password {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}
	f.current = body.Email
	writeJSON(w, http.StatusOK, map[string]string{"token": f.token})
}

func (f *FakeBackend) profile(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	user := *f.users[f.current]
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeBackend) updateProfile(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Expected multipart form"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.users[f.current]
	for k, v := range r.MultipartForm.Value {
		if len(v) == 0 {
			continue
		}
		switch k {
		case "firstName":
			user.FirstName = v[0]
		case "middleName":
			user.MiddleName = v[0]
		case "lastName":
			user.LastName = v[0]
		case "mobileNumber":
			user.MobileNumber = v[0]
		case "password":
			user.Password = v[0]
		}
	}
	if files := r.MultipartForm.File["photo"]; len(files) > 0 {
		user.Photo = files[0].Filename
	}
	writeJSON(w, http.StatusOK, *user)
}

func (f *FakeBackend) listFIRs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, f.FIRs())
}

func (f *FakeBackend) createFIR(w http.ResponseWriter, r *http.Request) {
	var record fir.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body"})
		return
	}
	record.ID = ""
	f.mu.Lock()
	stored := f.storeLocked(record)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, stored)
}

func (f *FakeBackend) getFIR(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(fir.ID(r.PathValue("id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "FIR not found"})
		return
	}
	writeJSON(w, http.StatusOK, f.firs[i])
}

func (f *FakeBackend) updateFIR(w http.ResponseWriter, r *http.Request) {
	var record fir.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(fir.ID(r.PathValue("id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "FIR not found"})
		return
	}
	record.ID = f.firs[i].ID
	record.FIRNumber = f.firs[i].FIRNumber
	record.DateTime = f.firs[i].DateTime
	f.firs[i] = record
	writeJSON(w, http.StatusOK, record)
}

func (f *FakeBackend) deleteFIR(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexLocked(fir.ID(r.PathValue("id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "FIR not found"})
		return
	}
	f.firs = append(f.firs[:i], f.firs[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "FIR deleted"})
}

func (f *FakeBackend) storeLocked(r fir.Record) fir.Record {
	if r.ID == "" {
		r.ID = fir.ID(strconv.Itoa(f.nextID))
	}
	if n, err := strconv.Atoi(string(r.ID)); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
	if r.FIRNumber == "" {
		r.FIRNumber = "FIR-" + pad(len(f.firs)+1)
	}
	if r.DateTime == "" {
		r.DateTime = "2024-03-01T10:00:00Z"
	}
	f.firs = append(f.firs, r)
	return r
}

func (f *FakeBackend) indexLocked(id fir.ID) int {
	for i, r := range f.firs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func itoa(n int) string { return strconv.Itoa(n) }

func pad(n int) string { return fmt.Sprintf("%04d", n) }
