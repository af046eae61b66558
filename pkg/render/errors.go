package render

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-firform/pkg/model"
)

// ErrorMapping splits a backend error payload into field-level and form-level
// messages keyed by schema field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Message returns the first form-level message, or the first field message in
// schema order when the payload carried none.
func (m ErrorMapping) Message(schema model.FormSchema) string {
	if len(m.Form) > 0 {
		return m.Form[0]
	}
	for _, name := range schema.FieldNames() {
		if msgs := m.Fields[name]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// MapErrorPayload assigns server error paths (JSON pointers, dotted paths,
// request wrappers) to schema fields. Unknown paths are kept as form-level
// errors so messages are not lost.
func MapErrorPayload(schema model.FormSchema, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		messages := dedupe(payload[path])
		if len(messages) == 0 {
			continue
		}
		name, ok := fieldForPath(schema, path)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = dedupe(append(mapping.Fields[name], messages...))
	}
	mapping.Form = dedupe(mapping.Form)
	return mapping
}

// DecodeErrorBody reads the error shapes the backend produces: a plain text
// body, {"message": ...}, {"error": ...} and an "errors" object mapping fields
// to a message or a list of messages.
func DecodeErrorBody(body []byte) (string, map[string][]string) {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		var plain string
		if json.Unmarshal(body, &plain) == nil {
			return strings.TrimSpace(plain), nil
		}
		return text, nil
	}

	var message string
	for _, key := range []string{"message", "error", "detail", "title"} {
		if raw, ok := doc[key]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				message = strings.TrimSpace(s)
				break
			}
		}
	}

	var fields map[string][]string
	if raw, ok := doc["errors"]; ok {
		fields = decodeFieldErrors(raw)
	}
	return message, fields
}

func decodeFieldErrors(raw json.RawMessage) map[string][]string {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		var list []string
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			return map[string][]string{"": list}
		}
		return nil
	}
	out := make(map[string][]string, len(generic))
	for key, value := range generic {
		var one string
		if json.Unmarshal(value, &one) == nil {
			out[key] = append(out[key], one)
			continue
		}
		var many []string
		if json.Unmarshal(value, &many) == nil {
			out[key] = append(out[key], many...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var wrapperSegments = map[string]bool{
	"body":       true,
	"request":    true,
	"payload":    true,
	"data":       true,
	"attributes": true,
	"errors":     true,
}

// fieldForPath resolves the first meaningful path segment to a schema field,
// ignoring wrappers and array indexes. Form fields are flat, so deeper
// segments never matter.
func fieldForPath(schema model.FormSchema, path string) (string, bool) {
	unescape := strings.NewReplacer("~1", "/", "~0", "~")
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return strings.ContainsRune("/.[]#$", r)
	})
	for _, segment := range segments {
		segment = strings.TrimSpace(unescape.Replace(segment))
		if segment == "" || wrapperSegments[strings.ToLower(segment)] {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		for _, field := range schema.Fields {
			if strings.EqualFold(field.Name, segment) {
				return field.Name, true
			}
		}
		return "", false
	}
	return "", false
}

// dedupe trims messages and drops blanks and repeats, keeping order.
func dedupe(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
