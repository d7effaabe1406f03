package validate

import (
	"fmt"
	"math"
	"time"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
)

// Violation is a cross-field finding anchored to the field whose edit most
// likely resolves it.
type Violation struct {
	Field   string
	Message string
}

// Advisory is a non-blocking cross-field finding. Advisories surface as
// dismissible warnings and never gate navigation or submission.
type Advisory struct {
	RuleID  string
	Field   string
	Message string
}

// Rule is a predicate over two or more fields of the same record. Rules are
// evaluated on submit (and on leaving the final wizard section), not on every
// keystroke, so multi-field groups can be filled without flashing errors.
// Each built-in check guards its own applicability: a rule stays silent until
// the fields that make it meaningful are present.
type Rule struct {
	ID       string
	Fields   []string
	Advisory bool
	Check    func(rec record.Record) []Violation
}

// RulesFor returns the built-in cross-field rules for an entity kind.
func RulesFor(kind string) []Rule {
	switch kind {
	case schema.KindStudentProfile:
		return StudentProfileRules()
	default:
		return nil
	}
}

// Evaluate runs the rules, splitting blocking violations (keyed by field)
// from advisories.
func Evaluate(rules []Rule, rec record.Record) (map[string][]string, []Advisory) {
	errs := make(map[string][]string)
	var advisories []Advisory
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		for _, violation := range rule.Check(rec) {
			if rule.Advisory {
				advisories = append(advisories, Advisory{RuleID: rule.ID, Field: violation.Field, Message: violation.Message})
				continue
			}
			errs[violation.Field] = append(errs[violation.Field], violation.Message)
		}
	}
	if len(errs) == 0 {
		errs = nil
	}
	return errs, advisories
}

// StudentProfileRules returns the student-profile rule set evaluated against
// the current calendar year.
func StudentProfileRules() []Rule {
	return StudentProfileRulesAt(time.Now().Year())
}

// StudentProfileRulesAt builds the student-profile rule set against a fixed
// reference year, which keeps the academic-gap rule deterministic in tests.
func StudentProfileRulesAt(nowYear int) []Rule {
	return []Rule{
		{
			ID:     "academic-gap",
			Fields: []string{"graduationYear", "currentAcademicGap"},
			Check: func(rec record.Record) []Violation {
				if !rec.Has("graduationYear") || !rec.Has("currentAcademicGap") {
					return nil
				}
				year, ok := record.Number(rec["graduationYear"])
				if !ok {
					return nil
				}
				gap, ok := record.Number(rec["currentAcademicGap"])
				if !ok {
					return nil
				}
				computed := float64(nowYear) - year
				if math.Abs(gap-computed) <= 1 {
					return nil
				}
				return []Violation{{
					Field:   "currentAcademicGap",
					Message: fmt.Sprintf("Academic gap should be about %d years for a %d graduation", int(computed), int(year)),
				}}
			},
		},
		{
			ID:     "loan-consistency",
			Fields: []string{"loanApproval", "loanAmount"},
			Check: func(rec record.Record) []Violation {
				_, hasApproval := rec["loanApproval"]
				_, hasAmount := rec["loanAmount"]
				if !hasApproval && !hasAmount {
					return nil
				}
				approved, _ := record.Bool(rec["loanApproval"])
				amount, _ := record.Number(rec["loanAmount"])
				switch {
				case approved && amount <= 0:
					return []Violation{{
						Field:   "loanAmount",
						Message: "An approved loan requires a loan amount greater than zero",
					}}
				case !approved && amount > 0:
					return []Violation{{
						Field:   "loanApproval",
						Message: "A loan amount greater than zero requires loan approval",
					}}
				}
				return nil
			},
		},
		{
			ID:     "employment-details",
			Fields: []string{"currentEmploymentStatus", "jobTitle", "organizationName", "fieldOfWork", "gapReasonIfAny"},
			Check: func(rec record.Record) []Violation {
				if !rec.Has("currentEmploymentStatus") {
					return nil
				}
				status, _ := rec["currentEmploymentStatus"].(string)
				switch status {
				case "Employed", "Self-employed":
					var out []Violation
					for _, field := range []string{"jobTitle", "organizationName", "fieldOfWork"} {
						if !rec.Has(field) {
							out = append(out, Violation{
								Field:   field,
								Message: fmt.Sprintf("%s is required when employment status is %s", fieldLabel(field), status),
							})
						}
					}
					return out
				case "Unemployed":
					if !rec.Has("gapReasonIfAny") {
						return []Violation{{
							Field:   "gapReasonIfAny",
							Message: "Gap reason is required when employment status is Unemployed",
						}}
					}
				}
				return nil
			},
		},
		{
			ID:       "budget-parity",
			Fields:   []string{"studyBudget", "budgetRange"},
			Advisory: true,
			Check: func(rec record.Record) []Violation {
				if !rec.Has("studyBudget") || !rec.Has("budgetRange") {
					return nil
				}
				budget, ok := record.Number(rec["studyBudget"])
				if !ok {
					return nil
				}
				rangeLabel, _ := rec["budgetRange"].(string)
				if BudgetInRange(budget, rangeLabel) {
					return nil
				}
				return []Violation{{
					Field:   "studyBudget",
					Message: fmt.Sprintf("Study budget %v does not match the selected budget range %q", budget, rangeLabel),
				}}
			},
		},
	}
}

// ComputedAcademicGap derives the expected academic gap from a graduation
// year. Wizards pre-fill the gap field with this value so the academic-gap
// rule rarely fires in practice.
func ComputedAcademicGap(graduationYear, nowYear int) int {
	gap := nowYear - graduationYear
	if gap < 0 {
		return 0
	}
	return gap
}

// BudgetInRange reports whether a numeric budget falls inside one of the
// closed budget-range buckets.
func BudgetInRange(budget float64, rangeLabel string) bool {
	low, high, ok := budgetBounds(rangeLabel)
	if !ok {
		return false
	}
	return budget >= low && budget <= high
}

func budgetBounds(rangeLabel string) (low, high float64, ok bool) {
	switch rangeLabel {
	case "Under $10,000":
		return 0, 10_000, true
	case "$10,000 - $20,000":
		return 10_000, 20_000, true
	case "$20,000 - $35,000":
		return 20_000, 35_000, true
	case "$35,000 - $50,000":
		return 35_000, 50_000, true
	case "Above $50,000":
		return 50_000, math.MaxFloat64, true
	default:
		return 0, 0, false
	}
}

func fieldLabel(field string) string {
	switch field {
	case "jobTitle":
		return "Job title"
	case "organizationName":
		return "Organization"
	case "fieldOfWork":
		return "Field of work"
	default:
		return field
	}
}
