package model

import internalmodel "github.com/goliatone/go-firform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeDate    = internalmodel.FieldTypeDate
	FieldTypeSelect  = internalmodel.FieldTypeSelect
	FieldTypeSet     = internalmodel.FieldTypeSet
	FieldTypeFile    = internalmodel.FieldTypeFile
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

const (
	FormatPassword = internalmodel.FormatPassword
	FormatTextArea = internalmodel.FormatTextArea
)

const (
	ValidationRuleMinLength   = internalmodel.ValidationRuleMinLength
	ValidationRulePattern     = internalmodel.ValidationRulePattern
	ValidationRuleCharClasses = internalmodel.ValidationRuleCharClasses
	ValidationRuleEqualsField = internalmodel.ValidationRuleEqualsField
	ValidationRulePastDate    = internalmodel.ValidationRulePastDate
	ValidationRuleMaxFileSize = internalmodel.ValidationRuleMaxFileSize
	ValidationRuleMimeTypes   = internalmodel.ValidationRuleMimeTypes
	ValidationRuleMinItems    = internalmodel.ValidationRuleMinItems
	ValidationRuleMatchesEnv  = internalmodel.ValidationRuleMatchesEnv
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormSchema = internalmodel.FormSchema
type FileRef = internalmodel.FileRef

// ValidateSchema exposes the structural schema checks.
func ValidateSchema(schema FormSchema) error {
	return internalmodel.ValidateSchema(schema)
}

// DefaultLabeler exposes the label derivation used when a field has no label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// OpenFileRef builds a FileRef for a file on disk, sniffing its content type.
func OpenFileRef(path string) (FileRef, error) {
	return internalmodel.OpenFileRef(path)
}
