// Package profileforms is the public façade over the profile/form completion
// and validation engine: section schemas, field validators, cross-field
// consistency rules, completion calculators, the data-quality auditor, and
// the section-gated wizard controller.
package profileforms

import (
	"github.com/goliatone/go-profileforms/pkg/audit"
	"github.com/goliatone/go-profileforms/pkg/completion"
	"github.com/goliatone/go-profileforms/pkg/gateway"
	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/validate"
	"github.com/goliatone/go-profileforms/pkg/wizard"
)

// Record is the open key/value entity shape the engine edits.
type Record = record.Record

// Section is a named, ordered grouping of fields.
type Section = schema.Section

// EntitySchema couples sections with field constraint declarations.
type EntitySchema = schema.EntitySchema

// CompletionResult reports how complete a record is.
type CompletionResult = completion.Result

// Finding is one data-quality observation on a persisted record.
type Finding = audit.Finding

// Gateway is the external submission boundary.
type Gateway = gateway.Gateway

// WizardOption configures a wizard controller.
type WizardOption = wizard.Option

// Built-in entity kinds.
const (
	KindStudentProfile = schema.KindStudentProfile
	KindScholarship    = schema.KindScholarship
)

// GetSections returns the ordered section list for an entity kind from the
// default registry.
func GetSections(kind string) []Section {
	return schema.Sections(kind)
}

// FieldLevelCompletion computes the compulsory-field completion percentage.
func FieldLevelCompletion(es EntitySchema, rec Record) CompletionResult {
	return completion.FieldLevel(es, rec)
}

// SectionLevelCompletion computes the completed-sections percentage used by
// dashboard summaries. It is a distinct operation from FieldLevelCompletion:
// the two disagree on partially-filled sections.
func SectionLevelCompletion(es EntitySchema, rec Record) CompletionResult {
	return completion.SectionLevel(es, rec)
}

// AuditRecord runs the advisory data-quality checks on a persisted record.
func AuditRecord(rec Record) []Finding {
	return audit.Run(rec)
}

// ValidateSection validates one section of a record against its schema.
func ValidateSection(es EntitySchema, sectionID string, rec Record) map[string][]string {
	return validate.Section(es, sectionID, rec)
}

// NewWizard constructs a wizard controller over an entity schema and a
// gateway.
func NewWizard(es EntitySchema, gw Gateway, opts ...WizardOption) *wizard.Controller {
	return wizard.New(es, gw, opts...)
}
