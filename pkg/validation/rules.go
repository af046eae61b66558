package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-firform/pkg/model"
)

// DateLayout is the wire and input format of date fields.
const DateLayout = "2006-01-02"

// Snapshot is the full input a rule sees: every field value, environment facts
// the form learned from collaborators (the expected captcha text) and the clock
// reading taken when validation started.
type Snapshot struct {
	Values map[string]any
	Env    map[string]string
	Now    time.Time
}

// Value returns the value stored for name.
func (s Snapshot) Value(name string) any {
	if s.Values == nil {
		return nil
	}
	return s.Values[name]
}

// Rule returns an error message, or "" when value satisfies it. Rules must be
// deterministic for a given (name, value, snapshot).
type Rule func(name string, value any, snap Snapshot) string

func compileRule(field model.Field, def model.ValidationRule) (Rule, error) {
	message := def.Message
	text := Text
	if field.Secret() {
		text = Raw
	}
	switch def.Kind {
	case model.ValidationRuleMinLength:
		limit, err := strconv.Atoi(def.Params["value"])
		if err != nil {
			return nil, fmt.Errorf("validation: %s minLength: %w", field.Name, err)
		}
		return func(_ string, value any, _ Snapshot) string {
			if len([]rune(text(value))) < limit {
				return message
			}
			return ""
		}, nil

	case model.ValidationRulePattern:
		expr, err := regexp.Compile(def.Params["pattern"])
		if err != nil {
			return nil, fmt.Errorf("validation: %s pattern: %w", field.Name, err)
		}
		return func(_ string, value any, _ Snapshot) string {
			if !expr.MatchString(text(value)) {
				return message
			}
			return ""
		}, nil

	case model.ValidationRuleCharClasses:
		checks, err := parseClasses(def.Params["classes"])
		if err != nil {
			return nil, fmt.Errorf("validation: %s charClasses: %w", field.Name, err)
		}
		return func(_ string, value any, _ Snapshot) string {
			entered := text(value)
			for _, check := range checks {
				if !strings.ContainsFunc(entered, check) {
					return message
				}
			}
			return ""
		}, nil

	case model.ValidationRuleEqualsField:
		other := def.Params["field"]
		return func(_ string, value any, snap Snapshot) string {
			if Raw(value) != Raw(snap.Value(other)) {
				return message
			}
			return ""
		}, nil

	case model.ValidationRulePastDate:
		return func(_ string, value any, snap Snapshot) string {
			if !beforeToday(Text(value), snap.Now) {
				return message
			}
			return ""
		}, nil

	case model.ValidationRuleMaxFileSize:
		limit, err := strconv.ParseInt(def.Params["value"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("validation: %s maxFileSize: %w", field.Name, err)
		}
		return func(_ string, value any, _ Snapshot) string {
			if file, ok := File(value); ok && file.Size > limit {
				return message
			}
			return ""
		}, nil

	case model.ValidationRuleMimeTypes:
		allowed := make(map[string]struct{})
		for _, item := range strings.Split(def.Params["types"], ",") {
			if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
				allowed[item] = struct{}{}
			}
		}
		return func(_ string, value any, _ Snapshot) string {
			file, ok := File(value)
			if !ok {
				return message
			}
			if _, ok := allowed[baseMediaType(file.ContentType)]; !ok {
				return message
			}
			return ""
		}, nil

	case model.ValidationRuleMinItems:
		limit, err := strconv.Atoi(def.Params["value"])
		if err != nil {
			return nil, fmt.Errorf("validation: %s minItems: %w", field.Name, err)
		}
		return func(_ string, value any, _ Snapshot) string {
			if len(Set(value)) < limit {
				return message
			}
			return ""
		}, nil

	case model.ValidationRuleMatchesEnv:
		key := def.Params["key"]
		return func(_ string, value any, snap Snapshot) string {
			expected := snap.Env[key]
			if expected == "" {
				return ""
			}
			if Raw(value) != expected {
				return message
			}
			return ""
		}, nil
	}
	return nil, fmt.Errorf("validation: %s: unknown rule kind %q", field.Name, def.Kind)
}

func parseClasses(classes string) ([]func(rune) bool, error) {
	var checks []func(rune) bool
	for _, name := range strings.Split(classes, ",") {
		switch strings.TrimSpace(name) {
		case "lower":
			checks = append(checks, unicode.IsLower)
		case "upper":
			checks = append(checks, unicode.IsUpper)
		case "digit":
			checks = append(checks, unicode.IsDigit)
		case "letter":
			checks = append(checks, unicode.IsLetter)
		case "symbol":
			checks = append(checks, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
		case "":
		default:
			return nil, fmt.Errorf("unknown class %q", name)
		}
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("no classes declared")
	}
	return checks, nil
}

// beforeToday compares calendar dates in now's location so a date of birth
// equal to today is rejected regardless of the time of day.
func beforeToday(value string, now time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	date, err := time.ParseInLocation(DateLayout, value, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return date.Before(today)
}

func baseMediaType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return contentType
}
