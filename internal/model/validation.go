package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	errSchemaIDMissing  = errors.New("model: schema id is required")
	errSchemaNoFields   = errors.New("model: schema declares no fields")
	errFieldNameMissing = errors.New("model: field name is required")
)

// ValidateSchema checks a schema for structural problems before its rules are
// compiled: duplicate names, unknown rule kinds, broken parameters.
func ValidateSchema(schema FormSchema) error {
	if schema.ID == "" {
		return errSchemaIDMissing
	}
	if len(schema.Fields) == 0 {
		return fmt.Errorf("%w: %s", errSchemaNoFields, schema.ID)
	}

	seen := make(map[string]struct{}, len(schema.Fields))
	for _, field := range schema.Fields {
		if field.Name == "" {
			return fmt.Errorf("%w (schema %s)", errFieldNameMissing, schema.ID)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: schema %s: duplicate field %q", schema.ID, field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	for _, field := range schema.Fields {
		if err := validateField(schema, field); err != nil {
			return fmt.Errorf("model: schema %s field %s: %w", schema.ID, field.Name, err)
		}
	}
	return nil
}

func validateField(schema FormSchema, field Field) error {
	switch field.Type {
	case FieldTypeString, FieldTypeDate, FieldTypeFile, FieldTypeBoolean:
	case FieldTypeSelect, FieldTypeSet:
		if len(field.Options) == 0 {
			return fmt.Errorf("%s field requires options", field.Type)
		}
	default:
		return fmt.Errorf("unknown field type %q", field.Type)
	}

	for _, rule := range field.Validations {
		if rule.Message == "" {
			return fmt.Errorf("rule %s requires a message", rule.Kind)
		}
		switch rule.Kind {
		case ValidationRuleMinLength, ValidationRuleMaxFileSize, ValidationRuleMinItems:
			if _, err := strconv.Atoi(rule.Params["value"]); err != nil {
				return fmt.Errorf("rule %s: value must be an integer", rule.Kind)
			}
		case ValidationRulePattern:
			if _, err := regexp.Compile(rule.Params["pattern"]); err != nil {
				return fmt.Errorf("rule %s: %w", rule.Kind, err)
			}
		case ValidationRuleEqualsField:
			if _, ok := schema.Field(rule.Params["field"]); !ok {
				return fmt.Errorf("rule %s references unknown field %q", rule.Kind, rule.Params["field"])
			}
		case ValidationRuleMatchesEnv:
			if rule.Params["key"] == "" {
				return fmt.Errorf("rule %s requires a key", rule.Kind)
			}
		case ValidationRuleCharClasses:
			if rule.Params["classes"] == "" {
				return fmt.Errorf("rule %s requires classes", rule.Kind)
			}
		case ValidationRuleMimeTypes:
			if rule.Params["types"] == "" {
				return fmt.Errorf("rule %s requires types", rule.Kind)
			}
		case ValidationRulePastDate:
		default:
			return fmt.Errorf("unknown rule kind %q", rule.Kind)
		}
	}
	return nil
}
