package schema_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-profileforms/pkg/schema"
)

const partnerSchemaYAML = `
kind: partner-profile
sections:
  - id: contact
    label: Contact
    icon: mail
    fields: [companyName, contactEmail]
  - id: coverage
    label: Coverage
    fields: [regions]
fields:
  companyName:
    type: string
    label: Company Name
    required: true
    minLength: 2
    maxLength: 120
  contactEmail:
    type: string
    required: true
    format: email
  regions:
    type: array
    required: true
    minItems: 1
    maxItems: 10
`

func TestParseYAML(t *testing.T) {
	es, err := schema.ParseYAML([]byte(partnerSchemaYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if es.Kind != "partner-profile" {
		t.Fatalf("kind = %q, want partner-profile", es.Kind)
	}
	if len(es.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(es.Sections))
	}
	decl, ok := es.FieldDecl("companyName")
	if !ok {
		t.Fatalf("companyName not declared")
	}
	if !decl.Required || decl.MinLength == nil || *decl.MinLength != 2 {
		t.Fatalf("companyName constraints not parsed: %+v", decl)
	}
	if decl, _ := es.FieldDecl("contactEmail"); decl.Format != schema.FormatEmail {
		t.Fatalf("contactEmail format = %q, want %q", decl.Format, schema.FormatEmail)
	}
}

func TestParseYAMLRejectsUndeclaredSectionField(t *testing.T) {
	broken := strings.Replace(partnerSchemaYAML, "fields: [regions]", "fields: [regions, missing]", 1)
	if _, err := schema.ParseYAML([]byte(broken)); err == nil {
		t.Fatalf("ParseYAML accepted a section referencing an undeclared field")
	}
}

func TestRegisterLoadedSchema(t *testing.T) {
	es, err := schema.ParseYAML([]byte(partnerSchemaYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	reg := schema.NewRegistry()
	if err := reg.Register(es); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := reg.Get("partner-profile"); !ok {
		t.Fatalf("registered kind not resolvable")
	}
}
