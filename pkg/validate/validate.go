// Package validate turns declarative field constraints into per-field and
// per-section checks, and hosts the cross-field consistency rules that a
// single-field schema cannot express. Validators never panic and never log;
// they return human-readable messages the caller renders next to the field.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
)

// Field runs a single declaration against a candidate value. A nil result
// means the value is acceptable. Validation is field-local and re-entrant, so
// calling it on every keystroke is safe.
func Field(decl schema.Field, value any) []string {
	label := decl.DisplayLabel()

	if !record.Filled(value) {
		if decl.Required {
			return []string{fmt.Sprintf("%s is required", label)}
		}
		return nil
	}

	switch decl.Type {
	case schema.FieldTypeString, "":
		return stringChecks(decl, label, value)
	case schema.FieldTypeInteger, schema.FieldTypeNumber:
		return numberChecks(decl, label, value)
	case schema.FieldTypeBoolean:
		if _, ok := record.Bool(value); !ok {
			return []string{fmt.Sprintf("%s must be a yes/no value", label)}
		}
		return nil
	case schema.FieldTypeArray:
		return arrayChecks(decl, label, value)
	default:
		return nil
	}
}

// Section validates every declared field of one section against the record,
// returning messages keyed by field name. Fields outside the section are
// never touched, which keeps section errors local.
func Section(es schema.EntitySchema, sectionID string, rec record.Record) map[string][]string {
	errs := make(map[string][]string)
	for _, decl := range es.FieldsFor(sectionID) {
		if messages := Field(decl, rec[decl.Name]); len(messages) > 0 {
			errs[decl.Name] = messages
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Entity validates every section of the schema against the record.
func Entity(es schema.EntitySchema, rec record.Record) map[string][]string {
	errs := make(map[string][]string)
	for _, section := range es.Sections {
		for field, messages := range Section(es, section.ID, rec) {
			errs[field] = append(errs[field], messages...)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func stringChecks(decl schema.Field, label string, value any) []string {
	raw, ok := value.(string)
	if !ok {
		return []string{fmt.Sprintf("%s must be text", label)}
	}
	text := strings.TrimSpace(raw)
	if decl.FreeText {
		text = CleanText(text)
	}

	var messages []string
	if decl.MinLength != nil && len([]rune(text)) < *decl.MinLength {
		messages = append(messages, fmt.Sprintf("%s must be at least %d characters", label, *decl.MinLength))
	}
	if decl.MaxLength != nil && len([]rune(text)) > *decl.MaxLength {
		messages = append(messages, fmt.Sprintf("%s must be at most %d characters", label, *decl.MaxLength))
	}
	if msg := formatCheck(decl, label, text); msg != "" {
		messages = append(messages, msg)
	}
	if len(decl.Enum) > 0 && !enumMember(decl.Enum, text) {
		messages = append(messages, fmt.Sprintf("%s must be one of: %s", label, strings.Join(decl.Enum, ", ")))
	}
	return messages
}

func numberChecks(decl schema.Field, label string, value any) []string {
	n, ok := record.Number(value)
	if !ok {
		return []string{fmt.Sprintf("%s must be a number", label)}
	}
	var messages []string
	if decl.Type == schema.FieldTypeInteger && n != math.Trunc(n) {
		messages = append(messages, fmt.Sprintf("%s must be a whole number", label))
	}
	if decl.Minimum != nil && n < *decl.Minimum {
		messages = append(messages, fmt.Sprintf("%s must be at least %v", label, *decl.Minimum))
	}
	if decl.Maximum != nil && n > *decl.Maximum {
		messages = append(messages, fmt.Sprintf("%s must be at most %v", label, *decl.Maximum))
	}
	if decl.Format == schema.FormatGraduationYear {
		if msg := graduationYearCheck(label, n); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}

func arrayChecks(decl schema.Field, label string, value any) []string {
	count, ok := itemCount(value)
	if !ok {
		return []string{fmt.Sprintf("%s must be a list", label)}
	}
	var messages []string
	if decl.MinItems != nil && count < *decl.MinItems {
		messages = append(messages, fmt.Sprintf("%s needs at least %d entries", label, *decl.MinItems))
	}
	if decl.MaxItems != nil && count > *decl.MaxItems {
		messages = append(messages, fmt.Sprintf("%s allows at most %d entries", label, *decl.MaxItems))
	}
	return messages
}

func itemCount(value any) (int, bool) {
	switch v := value.(type) {
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	default:
		return 0, false
	}
}

func enumMember(members []string, candidate string) bool {
	for _, member := range members {
		if member == candidate {
			return true
		}
	}
	return false
}
