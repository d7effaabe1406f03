// Package audit flags implausible values on already-persisted records. The
// auditor is advisory only: it never blocks navigation or save, and its
// findings render as a dismissible banner, typically on page load.
package audit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/validate"
)

// Severity grades a finding. Errors are almost certainly wrong data;
// warnings are worth a look.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding describes one implausible value on a persisted record.
type Finding struct {
	Severity       Severity `json:"severity"`
	Field          string   `json:"field"`
	Issue          string   `json:"issue"`
	ObservedValue  string   `json:"observedValue,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

var (
	numericOnly = regexp.MustCompile(`^[0-9\s.,-]+$`)
	percentGpa  = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*%$`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Run audits a persisted student-profile record and returns its findings in
// a stable order. Absent fields are skipped: missing data is a completion
// concern, not a quality concern.
func Run(rec record.Record) []Finding {
	return run(rec, time.Now())
}

func run(rec record.Record, now time.Time) []Finding {
	var findings []Finding

	if rec.Has("dateOfBirth") {
		raw := record.String(rec["dateOfBirth"])
		if dob, err := time.Parse(validate.DateLayout, strings.TrimSpace(raw)); err == nil && dob.After(now) {
			findings = append(findings, Finding{
				Severity:       SeverityError,
				Field:          "dateOfBirth",
				Issue:          "Date of birth is in the future",
				ObservedValue:  raw,
				Recommendation: "Correct the date of birth to a past date",
			})
		}
	}

	if rec.Has("passportNumber") {
		raw := record.String(rec["passportNumber"])
		compact := whitespace.ReplaceAllString(raw, "")
		if len(compact) < 6 {
			findings = append(findings, Finding{
				Severity:       SeverityError,
				Field:          "passportNumber",
				Issue:          "Passport number is shorter than 6 characters",
				ObservedValue:  raw,
				Recommendation: "Re-enter the passport number exactly as printed",
			})
		}
	}

	if rec.Has("highestGpa") {
		raw := record.String(rec["highestGpa"])
		if match := percentGpa.FindStringSubmatch(strings.TrimSpace(raw)); match != nil {
			if value, err := strconv.ParseFloat(match[1], 64); err == nil && value > 100 {
				findings = append(findings, Finding{
					Severity:       SeverityError,
					Field:          "highestGpa",
					Issue:          "Percentage cannot exceed 100%",
					ObservedValue:  raw,
					Recommendation: "Enter the GPA as a percentage no greater than 100%",
				})
			}
		}
	}

	if rec.Has("address") {
		raw := strings.TrimSpace(record.String(rec["address"]))
		switch {
		case len(raw) < 10:
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Field:          "address",
				Issue:          "Address looks too short to be deliverable",
				ObservedValue:  raw,
				Recommendation: "Include street, city and postal code",
			})
		case numericOnly.MatchString(raw):
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Field:          "address",
				Issue:          "Address is purely numeric",
				ObservedValue:  raw,
				Recommendation: "Include street and city names",
			})
		}
	}

	if rec.Has("interestedCourse") {
		raw := strings.TrimSpace(record.String(rec["interestedCourse"]))
		if numericOnly.MatchString(raw) {
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Field:          "interestedCourse",
				Issue:          "Course name is purely numeric",
				ObservedValue:  raw,
				Recommendation: "Use the course title rather than a code",
			})
		}
	}

	if rec.Has("studyBudget") && rec.Has("budgetRange") {
		budget, ok := record.Number(rec["studyBudget"])
		rangeLabel := record.String(rec["budgetRange"])
		if ok && !validate.BudgetInRange(budget, rangeLabel) {
			findings = append(findings, Finding{
				Severity:       SeverityWarning,
				Field:          "studyBudget",
				Issue:          fmt.Sprintf("Study budget does not fall inside the selected range %q", rangeLabel),
				ObservedValue:  record.String(rec["studyBudget"]),
				Recommendation: "Align the study budget with the budget range, or update the range",
			})
		}
	}

	return findings
}
