package validate_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/validate"
)

func evaluateAt(t *testing.T, nowYear int, rec record.Record) (map[string][]string, []validate.Advisory) {
	t.Helper()
	return validate.Evaluate(validate.StudentProfileRulesAt(nowYear), rec)
}

func TestAcademicGapTolerance(t *testing.T) {
	// Graduated 2022, evaluated in 2024: computed gap is 2, so a declared
	// gap of 1, 2, or 3 is acceptable.
	for _, gap := range []float64{1, 2, 3} {
		errs, _ := evaluateAt(t, 2024, record.Record{
			"graduationYear":     2022.0,
			"currentAcademicGap": gap,
		})
		if errs != nil {
			t.Fatalf("gap %v rejected: %v", gap, errs)
		}
	}

	errs, _ := evaluateAt(t, 2024, record.Record{
		"graduationYear":     2022.0,
		"currentAcademicGap": 5.0,
	})
	if errs == nil {
		t.Fatalf("gap 5 for a 2022 graduation accepted")
	}
	if _, ok := errs["currentAcademicGap"]; !ok {
		t.Fatalf("violation not anchored on currentAcademicGap: %v", errs)
	}
}

func TestAcademicGapSilentWhenIncomplete(t *testing.T) {
	errs, _ := evaluateAt(t, 2024, record.Record{"graduationYear": 2010.0})
	if errs != nil {
		t.Fatalf("rule fired without currentAcademicGap: %v", errs)
	}
}

func TestLoanConsistencyIsBidirectional(t *testing.T) {
	// Approved with no amount: anchored on loanAmount.
	errs, _ := evaluateAt(t, 2024, record.Record{
		"loanApproval": true,
		"loanAmount":   0.0,
	})
	if _, ok := errs["loanAmount"]; !ok {
		t.Fatalf("approved loan with zero amount accepted: %v", errs)
	}

	// Amount with no approval: anchored on loanApproval.
	errs, _ = evaluateAt(t, 2024, record.Record{
		"loanApproval": false,
		"loanAmount":   15000.0,
	})
	if _, ok := errs["loanApproval"]; !ok {
		t.Fatalf("unapproved loan with positive amount accepted: %v", errs)
	}

	// Amount present, approval key never set: still enforced.
	errs, _ = evaluateAt(t, 2024, record.Record{"loanAmount": 15000.0})
	if _, ok := errs["loanApproval"]; !ok {
		t.Fatalf("positive amount without approval key accepted: %v", errs)
	}

	// Consistent pair passes.
	errs, _ = evaluateAt(t, 2024, record.Record{
		"loanApproval": true,
		"loanAmount":   15000.0,
	})
	if errs != nil {
		t.Fatalf("consistent loan pair rejected: %v", errs)
	}
}

func TestEmploymentDetails(t *testing.T) {
	errs, _ := evaluateAt(t, 2024, record.Record{
		"currentEmploymentStatus": "Employed",
		"jobTitle":                "Engineer",
	})
	if errs == nil {
		t.Fatalf("Employed without organization and field of work accepted")
	}
	for _, field := range []string{"organizationName", "fieldOfWork"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("missing violation for %s: %v", field, errs)
		}
	}

	errs, _ = evaluateAt(t, 2024, record.Record{
		"currentEmploymentStatus": "Unemployed",
	})
	if _, ok := errs["gapReasonIfAny"]; !ok {
		t.Fatalf("Unemployed without a gap reason accepted: %v", errs)
	}

	errs, _ = evaluateAt(t, 2024, record.Record{
		"currentEmploymentStatus": "Studying",
	})
	if errs != nil {
		t.Fatalf("Studying should not require employment details: %v", errs)
	}
}

func TestBudgetParityIsAdvisoryOnly(t *testing.T) {
	errs, advisories := evaluateAt(t, 2024, record.Record{
		"studyBudget": 45000.0,
		"budgetRange": "Under $10,000",
	})
	if errs != nil {
		t.Fatalf("budget parity must not block: %v", errs)
	}
	if len(advisories) != 1 {
		t.Fatalf("advisories = %v, want exactly one", advisories)
	}
	if advisories[0].RuleID != "budget-parity" || advisories[0].Field != "studyBudget" {
		t.Fatalf("advisory = %+v, want budget-parity on studyBudget", advisories[0])
	}
	if !strings.Contains(advisories[0].Message, "Under $10,000") {
		t.Fatalf("advisory message does not name the selected range: %q", advisories[0].Message)
	}

	_, advisories = evaluateAt(t, 2024, record.Record{
		"studyBudget": 45000.0,
		"budgetRange": "$35,000 - $50,000",
	})
	if advisories != nil {
		t.Fatalf("matching budget produced advisories: %v", advisories)
	}
}

func TestBudgetInRange(t *testing.T) {
	cases := []struct {
		budget float64
		label  string
		want   bool
	}{
		{5000, "Under $10,000", true},
		{10000, "Under $10,000", true},
		{60000, "Above $50,000", true},
		{9000, "$10,000 - $20,000", false},
		{5000, "No Such Range", false},
	}
	for _, tc := range cases {
		if got := validate.BudgetInRange(tc.budget, tc.label); got != tc.want {
			t.Fatalf("BudgetInRange(%v, %q) = %v, want %v", tc.budget, tc.label, got, tc.want)
		}
	}
}

func TestComputedAcademicGap(t *testing.T) {
	if got := validate.ComputedAcademicGap(2020, 2024); got != 4 {
		t.Fatalf("ComputedAcademicGap(2020, 2024) = %d, want 4", got)
	}
	// A graduation year in the future never yields a negative gap.
	if got := validate.ComputedAcademicGap(2025, 2024); got != 0 {
		t.Fatalf("ComputedAcademicGap(2025, 2024) = %d, want 0", got)
	}
}

func TestRulesForUnknownKind(t *testing.T) {
	if rules := validate.RulesFor("no-such-kind"); rules != nil {
		t.Fatalf("RulesFor(no-such-kind) = %v, want nil", rules)
	}
}
