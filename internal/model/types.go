package model

// FieldType is the simplified enum for the input kinds a FIR form uses.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeDate    FieldType = "date"
	FieldTypeSelect  FieldType = "select"
	FieldTypeSet     FieldType = "set"
	FieldTypeFile    FieldType = "file"
	FieldTypeBoolean FieldType = "boolean"
)

// Field formats refine how string fields are prompted and read.
const (
	FormatPassword = "password"
	FormatTextArea = "textarea"
)

const (
	ValidationRuleMinLength   = "minLength"
	ValidationRulePattern     = "pattern"
	ValidationRuleCharClasses = "charClasses"
	ValidationRuleEqualsField = "equalsField"
	ValidationRulePastDate    = "pastDate"
	ValidationRuleMaxFileSize = "maxFileSize"
	ValidationRuleMimeTypes   = "mimeTypes"
	ValidationRuleMinItems    = "minItems"
	ValidationRuleMatchesEnv  = "matchesEnv"
)

// ValidationRule represents a single declarative constraint applied to a
// field. Thresholds live in Params["value"], expressions in
// Params["pattern"], sibling references in Params["field"], and environment
// keys in Params["key"]. Message is what the user sees when the rule fails.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message" yaml:"message"`
}

// Field models one input inside a form schema.
type Field struct {
	Name            string            `json:"name" yaml:"name"`
	Type            FieldType         `json:"type" yaml:"type"`
	Format          string            `json:"format,omitempty" yaml:"format,omitempty"`
	Label           string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder     string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description     string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required        bool              `json:"required" yaml:"required"`
	RequiredMessage string            `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	Options         []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations     []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the configured label or one derived from the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// Secret reports whether the value must be used exactly as typed, without
// trimming.
func (f Field) Secret() bool {
	return f.Format == FormatPassword
}

// Interactive reports whether the field is validated on blur. Boolean and
// set fields change only through toggles and wait for submit instead.
func (f Field) Interactive() bool {
	return f.Type != FieldTypeBoolean && f.Type != FieldTypeSet
}

// FormSchema is the declarative description of one form: its fields, their
// order and the rule table applied to them.
type FormSchema struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks a field up by name.
func (s FormSchema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (s FormSchema) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		out = append(out, field.Name)
	}
	return out
}

// FileRef points at a file chosen for an upload field. ContentType is sniffed
// from the file contents when the reference is opened from disk.
type FileRef struct {
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// IsZero reports whether no file was selected.
func (f FileRef) IsZero() bool {
	return f.Name == "" && f.Path == "" && f.Size == 0
}
