package validate_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/validate"
)

func student() schema.EntitySchema { return schema.StudentProfile() }

func decl(t *testing.T, es schema.EntitySchema, name string) schema.Field {
	t.Helper()
	d, ok := es.FieldDecl(name)
	if !ok {
		t.Fatalf("field %q not declared", name)
	}
	return d
}

func TestRequiredFieldRejectsEmpty(t *testing.T) {
	es := student()
	messages := validate.Field(decl(t, es, "fullName"), "   ")
	if len(messages) != 1 || !strings.Contains(messages[0], "required") {
		t.Fatalf("messages = %v, want a single 'required' message", messages)
	}
}

func TestOptionalFieldAcceptsEmpty(t *testing.T) {
	es := student()
	if messages := validate.Field(decl(t, es, "jobTitle"), ""); messages != nil {
		t.Fatalf("optional empty field produced %v", messages)
	}
}

func TestNamePattern(t *testing.T) {
	es := student()
	d := decl(t, es, "fullName")

	for _, ok := range []string{"Amina Diallo", "O'Neil-Smith Jr.", "Jean d'Arc"} {
		if messages := validate.Field(d, ok); messages != nil {
			t.Fatalf("%q rejected: %v", ok, messages)
		}
	}
	for _, bad := range []string{"R2-D2!", "name@home", "1234"} {
		if messages := validate.Field(d, bad); messages == nil {
			t.Fatalf("%q accepted, want pattern rejection", bad)
		}
	}
}

func TestPhoneNumber(t *testing.T) {
	es := student()
	d := decl(t, es, "phoneNumber")

	for _, ok := range []string{"+12025550147", "12025550147", "+44 20 7946 0958"} {
		if messages := validate.Field(d, ok); messages != nil {
			t.Fatalf("%q rejected: %v", ok, messages)
		}
	}
	for _, bad := range []string{"12345", "phone-number", "+1 (202) 555"} {
		if messages := validate.Field(d, bad); messages == nil {
			t.Fatalf("%q accepted, want rejection", bad)
		}
	}
}

func TestPassportNumber(t *testing.T) {
	es := student()
	d := decl(t, es, "passportNumber")

	if messages := validate.Field(d, "A12 3456 78"); messages != nil {
		t.Fatalf("whitespace-separated passport rejected: %v", messages)
	}
	for _, bad := range []string{"A123", "ABCDEFGHIJKLMNOP", "AB-1234"} {
		if messages := validate.Field(d, bad); messages == nil {
			t.Fatalf("%q accepted, want rejection", bad)
		}
	}
}

func TestCurrencyCode(t *testing.T) {
	es := schema.Scholarship()
	d := decl(t, es, "currencyCode")

	if messages := validate.Field(d, "USD"); messages != nil {
		t.Fatalf("USD rejected: %v", messages)
	}
	for _, bad := range []string{"usd", "US", "DOLLARS"} {
		if messages := validate.Field(d, bad); messages == nil {
			t.Fatalf("%q accepted, want rejection", bad)
		}
	}
}

func TestDateOfBirth(t *testing.T) {
	es := student()
	d := decl(t, es, "dateOfBirth")

	valid := time.Now().AddDate(-25, 0, 0).Format(validate.DateLayout)
	if messages := validate.Field(d, valid); messages != nil {
		t.Fatalf("valid date of birth rejected: %v", messages)
	}

	future := time.Now().AddDate(1, 0, 0).Format(validate.DateLayout)
	if messages := validate.Field(d, future); messages == nil {
		t.Fatalf("future date of birth accepted")
	}

	tooYoung := time.Now().AddDate(-10, 0, 0).Format(validate.DateLayout)
	if messages := validate.Field(d, tooYoung); messages == nil {
		t.Fatalf("implied age below 16 accepted")
	}

	tooOld := time.Now().AddDate(-120, 0, 0).Format(validate.DateLayout)
	if messages := validate.Field(d, tooOld); messages == nil {
		t.Fatalf("implied age above 100 accepted")
	}
}

func TestGraduationYearBounds(t *testing.T) {
	es := student()
	d := decl(t, es, "graduationYear")

	if messages := validate.Field(d, 2015); messages != nil {
		t.Fatalf("2015 rejected: %v", messages)
	}
	if messages := validate.Field(d, 1979); messages == nil {
		t.Fatalf("1979 accepted, want minimum rejection")
	}
	tooLate := time.Now().Year() + 2
	if messages := validate.Field(d, tooLate); messages == nil {
		t.Fatalf("%d accepted, want future rejection", tooLate)
	}
}

func TestGraduationYearFormatCarriesBothBounds(t *testing.T) {
	// A schema that tags the format without repeating the numeric bounds
	// still gets the full range.
	d := schema.Field{Name: "gradYear", Type: schema.FieldTypeInteger, Label: "Graduation Year", Format: schema.FormatGraduationYear}

	if messages := validate.Field(d, 1995); messages != nil {
		t.Fatalf("1995 rejected: %v", messages)
	}
	if messages := validate.Field(d, 1979); messages == nil {
		t.Fatalf("1979 accepted, want floor rejection")
	}
	if messages := validate.Field(d, time.Now().Year()+2); messages == nil {
		t.Fatalf("far-future year accepted")
	}
}

func TestEnumMembershipIsClosed(t *testing.T) {
	es := student()
	d := decl(t, es, "currentEmploymentStatus")

	if messages := validate.Field(d, "Employed"); messages != nil {
		t.Fatalf("Employed rejected: %v", messages)
	}
	if messages := validate.Field(d, "employed"); messages == nil {
		t.Fatalf("lowercase variant accepted; enum membership must be exact")
	}
	if messages := validate.Field(d, "Freelancing"); messages == nil {
		t.Fatalf("unknown enum member accepted")
	}
}

func TestArrayCardinality(t *testing.T) {
	es := student()
	d := decl(t, es, "preferredCountries")

	if messages := validate.Field(d, []string{"Canada", "Germany"}); messages != nil {
		t.Fatalf("two countries rejected: %v", messages)
	}
	six := []string{"a", "b", "c", "d", "e", "f"}
	if messages := validate.Field(d, six); messages == nil {
		t.Fatalf("six countries accepted, want max-cardinality rejection")
	}
	if messages := validate.Field(d, []string{}); messages == nil {
		t.Fatalf("empty required array accepted")
	}
}

func TestFundingAmountRange(t *testing.T) {
	es := schema.Scholarship()
	d := decl(t, es, "fundingAmount")

	if messages := validate.Field(d, 25000.0); messages != nil {
		t.Fatalf("25000 rejected: %v", messages)
	}
	if messages := validate.Field(d, 0.0); messages == nil {
		t.Fatalf("0 accepted, want minimum rejection")
	}
	if messages := validate.Field(d, 2_000_000.0); messages == nil {
		t.Fatalf("2000000 accepted, want maximum rejection")
	}
}

func TestFreeTextStripsMarkupBeforeLengthCheck(t *testing.T) {
	es := student()
	d := decl(t, es, "address")

	// Visible content is long enough once the markup is stripped.
	if messages := validate.Field(d, "<p>12 Rue de la Paix, Paris 75002</p>"); messages != nil {
		t.Fatalf("markup-wrapped address rejected: %v", messages)
	}
	// Markup padding does not rescue a too-short value.
	if messages := validate.Field(d, "<div><span>short</span></div>"); messages == nil {
		t.Fatalf("markup-padded short address accepted")
	}
}

func TestCleanText(t *testing.T) {
	if got := validate.CleanText("<b>Data &amp; Science</b>"); got != "Data & Science" {
		t.Fatalf("CleanText = %q, want %q", got, "Data & Science")
	}
	if got := validate.CleanText("   "); got != "" {
		t.Fatalf("CleanText(blank) = %q, want empty", got)
	}
}

func TestSectionErrorsStayLocal(t *testing.T) {
	es := student()
	rec := record.Record{
		"fullName": "A", // too short, personal section
		// academic section left completely empty
	}
	errs := validate.Section(es, "personal", rec)
	if errs == nil {
		t.Fatalf("expected personal-section errors")
	}
	if _, leaked := errs["highestQualification"]; leaked {
		t.Fatalf("personal-section validation leaked academic fields: %v", errs)
	}
}

func TestEntityAggregatesAllSections(t *testing.T) {
	es := student()
	errs := validate.Entity(es, record.Record{})
	required := es.RequiredFields()
	if len(errs) != len(required) {
		t.Fatalf("entity errors = %d, want one per required field (%d)", len(errs), len(required))
	}
	for _, name := range required {
		if _, ok := errs[name]; !ok {
			t.Fatalf("missing error for required field %q", name)
		}
	}
}

func TestValidatorsAreReentrant(t *testing.T) {
	es := student()
	d := decl(t, es, "emailAddress")
	for i := 0; i < 3; i++ {
		got := validate.Field(d, "not-an-email")
		want := validate.Field(d, "not-an-email")
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("repeated validation diverged: %v vs %v", got, want)
		}
	}
}
