// Package model defines the declarative form description shared by the rule
// table loader, the validation engine and the terminal renderer. A
// FormSchema lists Fields in display order; each Field carries its type,
// whether it is required (with the message shown when it is empty), the
// options for select and checkbox-group inputs, and a list of
// ValidationRules. Rules use canonical kinds (minLength, pattern,
// charClasses, equalsField, pastDate, maxFileSize, mimeTypes, minItems,
// matchesEnv) with string parameters so schema files stay diffable.
package model
