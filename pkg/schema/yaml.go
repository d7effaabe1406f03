package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Kind     string           `yaml:"kind"`
	Sections []Section        `yaml:"sections"`
	Fields   map[string]Field `yaml:"fields"`
}

// ParseYAML decodes an entity schema document. The layout mirrors the Go
// declarations so new entity kinds can ship as data files:
//
//	kind: partner-profile
//	sections:
//	  - id: contact
//	    label: Contact
//	    fields: [companyName, contactEmail]
//	fields:
//	  companyName: {type: string, required: true, minLength: 2}
//	  contactEmail: {type: string, required: true, format: email}
func ParseYAML(raw []byte) (EntitySchema, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return EntitySchema{}, fmt.Errorf("schema: parse yaml: %w", err)
	}

	es := EntitySchema{
		Kind:     doc.Kind,
		Sections: doc.Sections,
		Fields:   make(map[string]Field, len(doc.Fields)),
	}
	for name, decl := range doc.Fields {
		decl.Name = name
		es.Fields[name] = decl
	}
	if err := es.Validate(); err != nil {
		return EntitySchema{}, err
	}
	return es, nil
}

// LoadYAML reads and parses an entity schema document from a reader.
func LoadYAML(r io.Reader) (EntitySchema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return EntitySchema{}, fmt.Errorf("schema: read yaml: %w", err)
	}
	return ParseYAML(raw)
}

// LoadYAMLFile reads and parses an entity schema document from disk.
func LoadYAMLFile(path string) (EntitySchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EntitySchema{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return ParseYAML(raw)
}
