package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-profileforms/pkg/schema"
)

func TestBuiltinSchemasAreValid(t *testing.T) {
	for _, es := range []schema.EntitySchema{schema.StudentProfile(), schema.Scholarship()} {
		if err := es.Validate(); err != nil {
			t.Fatalf("%s: %v", es.Kind, err)
		}
	}
}

func TestStudentProfileHasSeventeenRequiredFields(t *testing.T) {
	es := schema.StudentProfile()
	required := es.RequiredFields()
	if len(required) != 17 {
		t.Fatalf("required fields = %d, want 17: %v", len(required), required)
	}
}

func TestSectionOrderIsStable(t *testing.T) {
	got := make([]string, 0, 7)
	for _, section := range schema.Sections(schema.KindStudentProfile) {
		got = append(got, section.ID)
	}
	want := []string{"personal", "academic", "study", "budget", "countries", "employment", "tests"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsForPopulatesNames(t *testing.T) {
	es := schema.Scholarship()
	for _, decl := range es.FieldsFor("funding") {
		if decl.Name == "" {
			t.Fatalf("FieldsFor returned a declaration without a name: %+v", decl)
		}
	}
}

func TestSectionIndex(t *testing.T) {
	es := schema.StudentProfile()
	if got := es.SectionIndex("loanAmount"); got != 3 {
		t.Fatalf("SectionIndex(loanAmount) = %d, want 3", got)
	}
	if got := es.SectionIndex("unknownField"); got != -1 {
		t.Fatalf("SectionIndex(unknownField) = %d, want -1", got)
	}
}

func TestRegistryRejectsInconsistentSchema(t *testing.T) {
	reg := schema.NewRegistry()
	err := reg.Register(schema.EntitySchema{
		Kind: "broken",
		Sections: []schema.Section{
			{ID: "only", Label: "Only", Fields: []string{"ghost"}},
		},
		Fields: map[string]schema.Field{},
	})
	if err == nil {
		t.Fatalf("Register accepted a section referencing an undeclared field")
	}
}

func TestRegistryRejectsFieldInTwoSections(t *testing.T) {
	es := schema.EntitySchema{
		Kind: "dup",
		Sections: []schema.Section{
			{ID: "a", Label: "A", Fields: []string{"shared"}},
			{ID: "b", Label: "B", Fields: []string{"shared"}},
		},
		Fields: map[string]schema.Field{
			"shared": {Type: schema.FieldTypeString},
		},
	}
	if err := es.Validate(); err == nil {
		t.Fatalf("Validate accepted a field owned by two sections")
	}
}
