package validation

import (
	"sort"
	"strings"

	"github.com/goliatone/go-firform/pkg/model"
)

// Issue is one failed field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result captures the outcome of validating every field of a form.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Map flattens the issues into a field -> message mapping.
func (r Result) Map() map[string]string {
	out := make(map[string]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = issue.Message
	}
	return out
}

type fieldRules struct {
	field model.Field
	rules []Rule
}

// RuleSet is the compiled rule table of one form schema.
type RuleSet struct {
	schemaID   string
	order      []string
	fields     map[string]fieldRules
	dependents map[string][]string
}

// Compile turns the declarative rules of schema into executable rules.
func Compile(schema model.FormSchema) (*RuleSet, error) {
	if err := model.ValidateSchema(schema); err != nil {
		return nil, err
	}

	set := &RuleSet{
		schemaID:   schema.ID,
		order:      schema.FieldNames(),
		fields:     make(map[string]fieldRules, len(schema.Fields)),
		dependents: make(map[string][]string),
	}
	for _, field := range schema.Fields {
		compiled := fieldRules{field: field}
		for _, def := range field.Validations {
			rule, err := compileRule(field, def)
			if err != nil {
				return nil, err
			}
			compiled.rules = append(compiled.rules, rule)
			if def.Kind == model.ValidationRuleEqualsField {
				other := def.Params["field"]
				set.dependents[other] = append(set.dependents[other], field.Name)
			}
		}
		set.fields[field.Name] = compiled
	}
	for key := range set.dependents {
		sort.Strings(set.dependents[key])
	}
	return set, nil
}

// SchemaID returns the id of the compiled schema.
func (r *RuleSet) SchemaID() string { return r.schemaID }

// Fields lists field names in declaration order.
func (r *RuleSet) Fields() []string {
	return append([]string(nil), r.order...)
}

// Field returns the schema definition of name.
func (r *RuleSet) Field(name string) (model.Field, bool) {
	entry, ok := r.fields[name]
	return entry.field, ok
}

// Dependents lists fields whose rules read name, e.g. confirmPassword for
// password.
func (r *RuleSet) Dependents(name string) []string {
	return append([]string(nil), r.dependents[name]...)
}

// Check runs the rules of name against the snapshot and returns the first
// failure. Optional fields with no value always pass; required ones report
// their required message before any other rule runs.
func (r *RuleSet) Check(name string, snap Snapshot) string {
	entry, ok := r.fields[name]
	if !ok {
		return ""
	}
	value := snap.Value(name)
	if Empty(entry.field.Type, value) {
		if entry.field.Required {
			return requiredMessage(entry.field)
		}
		return ""
	}
	for _, rule := range entry.rules {
		if msg := rule(name, value, snap); msg != "" {
			return msg
		}
	}
	return ""
}

// CheckAll validates every field in declaration order.
func (r *RuleSet) CheckAll(snap Snapshot) Result {
	result := Result{Valid: true}
	for _, name := range r.order {
		if msg := r.Check(name, snap); msg != "" {
			result.Valid = false
			result.Issues = append(result.Issues, Issue{Field: name, Message: msg})
		}
	}
	return result
}

func requiredMessage(field model.Field) string {
	if msg := strings.TrimSpace(field.RequiredMessage); msg != "" {
		return msg
	}
	return field.DisplayLabel() + " is required"
}
