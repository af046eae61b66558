package schema

import (
	"embed"
	"io/fs"
	"sync"
)

// Schema ids of the built-in forms.
const (
	Registration = "registration"
	Login        = "login"
	FIR          = "fir"
	Profile      = "profile"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// FormsFS exposes the built-in rule tables so callers can inspect or extend
// them.
func FormsFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		return embeddedForms
	}
	return sub
}

// Default loads the built-in schemas once per process.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadFS(FormsFS())
	})
	return defaultStore, defaultErr
}
