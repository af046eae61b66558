package backend

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-firform/pkg/render"
)

// ErrUnauthorized marks responses that mean the session is no longer valid.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError is a non-2xx response.
type APIError struct {
	Op      string
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("backend: %s: status %d: %s", e.Op, e.Status, e.Message)
}

// UserMessage returns the sanitised backend message.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap exposes ErrUnauthorized for 401 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

var strict = bluemonday.StrictPolicy()

// sanitize strips markup from backend text so it can be printed verbatim.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func decodeAPIError(op string, status int, body []byte) *APIError {
	message, fields := render.DecodeErrorBody(body)
	out := &APIError{Op: op, Status: status, Message: sanitize(message)}
	if len(fields) > 0 {
		out.Fields = make(map[string][]string, len(fields))
		for key, msgs := range fields {
			for _, msg := range msgs {
				if clean := sanitize(msg); clean != "" {
					out.Fields[key] = append(out.Fields[key], clean)
				}
			}
		}
	}
	if len(body) > 0 && strings.HasPrefix(strings.TrimSpace(string(body)), "<") && out.Message != "" {
		// HTML error pages collapse to their text; keep the first line only.
		out.Message = strings.TrimSpace(strings.SplitN(out.Message, "\n", 2)[0])
	}
	return out
}
