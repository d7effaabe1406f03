package schema

import (
	"fmt"
	"strings"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Format identifiers attach semantic validators to string fields beyond the
// generic length/pattern constraints.
const (
	FormatPersonName     = "person-name"
	FormatEmail          = "email"
	FormatPhone          = "phone"
	FormatPassport       = "passport"
	FormatCurrencyCode   = "currency-code"
	FormatDate           = "date"
	FormatDateOfBirth    = "date-of-birth"
	FormatGraduationYear = "graduation-year"
	FormatURL            = "url"
)

// Field declares the per-field constraints an entity schema attaches to one
// field name. Constraints are pure data; pkg/validate turns them into checks.
// Multi-field logic never lives here — it belongs to cross-field rules.
type Field struct {
	Name      string    `yaml:"name"`
	Type      FieldType `yaml:"type"`
	Label     string    `yaml:"label,omitempty"`
	Required  bool      `yaml:"required,omitempty"`
	Format    string    `yaml:"format,omitempty"`
	MinLength *int      `yaml:"minLength,omitempty"`
	MaxLength *int      `yaml:"maxLength,omitempty"`
	Minimum   *float64  `yaml:"minimum,omitempty"`
	Maximum   *float64  `yaml:"maximum,omitempty"`
	Enum      []string  `yaml:"enum,omitempty"`
	MinItems  *int      `yaml:"minItems,omitempty"`
	MaxItems  *int      `yaml:"maxItems,omitempty"`
	// FreeText marks fields whose value is sanitised (markup stripped)
	// before length checks run.
	FreeText bool `yaml:"freeText,omitempty"`
}

// DisplayLabel returns the human label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Name
}

// Section is a named, ordered grouping of fields with its own completion
// state. Order in the parent EntitySchema defines both display order and the
// wizard's linear navigation order.
type Section struct {
	ID     string   `yaml:"id"`
	Label  string   `yaml:"label"`
	Icon   string   `yaml:"icon,omitempty"`
	Fields []string `yaml:"fields"`
}

// EntitySchema couples the ordered section list with the per-field
// constraint declarations for one entity kind. Instances are static data:
// build them once (or load them from YAML) and register them.
type EntitySchema struct {
	Kind     string
	Sections []Section
	Fields   map[string]Field
}

// Section looks up a section by id.
func (es EntitySchema) Section(id string) (Section, bool) {
	for _, section := range es.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return Section{}, false
}

// SectionIndex returns the position of the section owning the named field,
// or -1 when no section claims it.
func (es EntitySchema) SectionIndex(field string) int {
	for i, section := range es.Sections {
		for _, name := range section.Fields {
			if name == field {
				return i
			}
		}
	}
	return -1
}

// FieldsFor returns the declared constraints for a section's fields in
// section order. Fields without a declaration are skipped.
func (es EntitySchema) FieldsFor(sectionID string) []Field {
	section, ok := es.Section(sectionID)
	if !ok {
		return nil
	}
	out := make([]Field, 0, len(section.Fields))
	for _, name := range section.Fields {
		if decl, ok := es.Fields[name]; ok {
			decl.Name = name
			out = append(out, decl)
		}
	}
	return out
}

// FieldDecl looks up one field declaration with its name populated.
func (es EntitySchema) FieldDecl(name string) (Field, bool) {
	decl, ok := es.Fields[name]
	if !ok {
		return Field{}, false
	}
	decl.Name = name
	return decl, true
}

// RequiredFields returns every required field name in section order.
func (es EntitySchema) RequiredFields() []string {
	var out []string
	for _, section := range es.Sections {
		for _, name := range section.Fields {
			if decl, ok := es.Fields[name]; ok && decl.Required {
				out = append(out, name)
			}
		}
	}
	return out
}

// Validate checks the schema for internal consistency: every section field
// must carry a declaration, and a field may belong to at most one section.
func (es EntitySchema) Validate() error {
	if strings.TrimSpace(es.Kind) == "" {
		return fmt.Errorf("schema: entity kind is required")
	}
	if len(es.Sections) == 0 {
		return fmt.Errorf("schema %q: at least one section is required", es.Kind)
	}
	owner := make(map[string]string)
	for _, section := range es.Sections {
		if strings.TrimSpace(section.ID) == "" {
			return fmt.Errorf("schema %q: section id is required", es.Kind)
		}
		for _, name := range section.Fields {
			if prev, dup := owner[name]; dup {
				return fmt.Errorf("schema %q: field %q belongs to both %q and %q", es.Kind, name, prev, section.ID)
			}
			owner[name] = section.ID
			if _, ok := es.Fields[name]; !ok {
				return fmt.Errorf("schema %q: section %q references undeclared field %q", es.Kind, section.ID, name)
			}
		}
	}
	for name, decl := range es.Fields {
		if decl.Name != "" && decl.Name != name {
			return fmt.Errorf("schema %q: field declared as %q but keyed as %q", es.Kind, decl.Name, name)
		}
	}
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
