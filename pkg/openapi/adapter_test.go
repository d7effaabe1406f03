package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileforms/pkg/openapi"
	"github.com/goliatone/go-profileforms/pkg/schema"
)

const partnerDoc = `
openapi: 3.0.3
info:
  title: Partner API
  version: "1.0"
paths: {}
components:
  schemas:
    PartnerProfile:
      type: object
      required: [companyName, contactEmail, regions]
      x-sections:
        - id: contact
          label: Contact
          icon: mail
          fields: [companyName, contactEmail, tier, notes]
        - id: coverage
          label: Coverage
          fields: [regions, priority]
      properties:
        companyName:
          type: string
          title: Company Name
          minLength: 2
          maxLength: 120
        contactEmail:
          type: string
          format: email
        tier:
          type: string
          enum: [Gold, Silver, Bronze]
        notes:
          type: string
          maxLength: 500
          x-free-text: true
        regions:
          type: array
          minItems: 1
          maxItems: 10
          items:
            type: string
        priority:
          type: integer
          minimum: 1
          maximum: 5
`

func TestEntitySchemaFromData(t *testing.T) {
	es, err := openapi.EntitySchemaFromData(context.Background(), []byte(partnerDoc), "PartnerProfile", "partner-profile")
	if err != nil {
		t.Fatalf("EntitySchemaFromData: %v", err)
	}

	if es.Kind != "partner-profile" {
		t.Fatalf("kind = %q, want partner-profile", es.Kind)
	}

	gotSections := make([]string, 0, len(es.Sections))
	for _, section := range es.Sections {
		gotSections = append(gotSections, section.ID)
	}
	if diff := cmp.Diff([]string{"contact", "coverage"}, gotSections); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
	if es.Sections[0].Icon != "mail" {
		t.Fatalf("icon = %q, want mail", es.Sections[0].Icon)
	}

	company, ok := es.FieldDecl("companyName")
	if !ok {
		t.Fatalf("companyName not derived")
	}
	if !company.Required || company.Label != "Company Name" {
		t.Fatalf("companyName = %+v", company)
	}
	if company.MinLength == nil || *company.MinLength != 2 || company.MaxLength == nil || *company.MaxLength != 120 {
		t.Fatalf("companyName length bounds = %+v", company)
	}

	email, _ := es.FieldDecl("contactEmail")
	if email.Format != schema.FormatEmail {
		t.Fatalf("contactEmail format = %q, want %q", email.Format, schema.FormatEmail)
	}

	tier, _ := es.FieldDecl("tier")
	if diff := cmp.Diff([]string{"Gold", "Silver", "Bronze"}, tier.Enum); diff != "" {
		t.Fatalf("tier enum mismatch (-want +got):\n%s", diff)
	}
	if tier.Required {
		t.Fatalf("tier should be optional")
	}

	notes, _ := es.FieldDecl("notes")
	if !notes.FreeText {
		t.Fatalf("notes should carry the free-text flag")
	}

	regions, _ := es.FieldDecl("regions")
	if regions.Type != schema.FieldTypeArray || regions.MinItems == nil || *regions.MinItems != 1 || regions.MaxItems == nil || *regions.MaxItems != 10 {
		t.Fatalf("regions = %+v", regions)
	}

	priority, _ := es.FieldDecl("priority")
	if priority.Type != schema.FieldTypeInteger || priority.Minimum == nil || *priority.Minimum != 1 || priority.Maximum == nil || *priority.Maximum != 5 {
		t.Fatalf("priority = %+v", priority)
	}
}

func TestEntitySchemaFromDataUnknownComponent(t *testing.T) {
	_, err := openapi.EntitySchemaFromData(context.Background(), []byte(partnerDoc), "NoSuchSchema", "x")
	if err == nil || !strings.Contains(err.Error(), "NoSuchSchema") {
		t.Fatalf("err = %v, want unknown-component error", err)
	}
}

func TestEntitySchemaFromDataRequiresSections(t *testing.T) {
	doc := strings.Replace(partnerDoc, "x-sections:", "x-other:", 1)
	_, err := openapi.EntitySchemaFromData(context.Background(), []byte(doc), "PartnerProfile", "x")
	if err == nil || !strings.Contains(err.Error(), "x-sections") {
		t.Fatalf("err = %v, want missing x-sections error", err)
	}
}

func TestEntitySchemaFromDataRejectsEmptyPayload(t *testing.T) {
	if _, err := openapi.EntitySchemaFromData(context.Background(), nil, "PartnerProfile", "x"); err == nil {
		t.Fatalf("empty payload accepted")
	}
}

func TestEntitySchemaFromDataCustomFormatWins(t *testing.T) {
	doc := strings.Replace(partnerDoc, "format: email", "format: email\n          x-format: person-name", 1)
	es, err := openapi.EntitySchemaFromData(context.Background(), []byte(doc), "PartnerProfile", "x")
	if err != nil {
		t.Fatalf("EntitySchemaFromData: %v", err)
	}
	email, _ := es.FieldDecl("contactEmail")
	if email.Format != schema.FormatPersonName {
		t.Fatalf("format = %q, want the x-format override", email.Format)
	}
}
