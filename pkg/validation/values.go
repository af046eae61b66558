package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-firform/pkg/model"
)

// Text returns the trimmed string form of a scalar value.
func Text(value any) string {
	return strings.TrimSpace(Raw(value))
}

// Raw returns the string form of a scalar value as entered.
func Raw(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Set returns the members of a checkbox-group value.
func Set(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// File returns the file reference held by value.
func File(value any) (model.FileRef, bool) {
	switch v := value.(type) {
	case model.FileRef:
		return v, !v.IsZero()
	case *model.FileRef:
		if v == nil {
			return model.FileRef{}, false
		}
		return *v, !v.IsZero()
	default:
		return model.FileRef{}, false
	}
}

// Empty reports whether value counts as "not provided" for a field of the
// given type.
func Empty(fieldType model.FieldType, value any) bool {
	switch fieldType {
	case model.FieldTypeSet:
		return len(Set(value)) == 0
	case model.FieldTypeFile:
		_, ok := File(value)
		return !ok
	case model.FieldTypeBoolean:
		b, _ := value.(bool)
		return !b
	default:
		return Text(value) == ""
	}
}

// Toggle adds option to set when absent and removes it otherwise. The result
// is sorted so equal sets compare equal.
func Toggle(set []string, option string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, item := range set {
		if item == option {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		out = append(out, option)
	}
	sort.Strings(out)
	return out
}
