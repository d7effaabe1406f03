// Package completion derives progress state from a partially-filled record.
// Both calculators are pure and deterministic: the same record and schema
// always produce the same result, and filling a previously-empty required
// field never lowers the percentage.
package completion

import (
	"math"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
)

// Result describes how complete a record is against its entity schema.
type Result struct {
	// Percentage is 0..100, rounded to the nearest integer.
	Percentage int `json:"percentage"`
	// CompletedSections counts sections whose required fields are all filled.
	CompletedSections int `json:"completedSections"`
	// TotalSections is the schema's section count.
	TotalSections int `json:"totalSections"`
	// PerSection maps section id to its complete flag.
	PerSection map[string]bool `json:"perSection"`
	// MissingFields lists unfilled required fields in section order, for UI
	// hinting.
	MissingFields []string `json:"missingFields,omitempty"`
}

// FieldLevel computes completion at field granularity: the percentage of
// required fields holding a non-empty value. This is the "compulsory fields"
// variant profile pages render as a progress bar.
func FieldLevel(es schema.EntitySchema, rec record.Record) Result {
	res := base(es, rec)
	required := es.RequiredFields()
	if len(required) == 0 {
		res.Percentage = 100
		return res
	}
	filled := len(required) - len(res.MissingFields)
	res.Percentage = roundPercent(filled, len(required))
	return res
}

// SectionLevel computes completion at section granularity: the percentage of
// fully-complete sections. Dashboards summarising a profile use this coarser
// variant. It intentionally disagrees with FieldLevel for partially-filled
// sections; the two are distinct operations, not interchangeable.
func SectionLevel(es schema.EntitySchema, rec record.Record) Result {
	res := base(es, rec)
	if res.TotalSections == 0 {
		res.Percentage = 100
		return res
	}
	res.Percentage = roundPercent(res.CompletedSections, res.TotalSections)
	return res
}

func base(es schema.EntitySchema, rec record.Record) Result {
	res := Result{
		TotalSections: len(es.Sections),
		PerSection:    make(map[string]bool, len(es.Sections)),
	}
	for _, section := range es.Sections {
		complete := true
		for _, decl := range es.FieldsFor(section.ID) {
			if !decl.Required {
				continue
			}
			if rec.Has(decl.Name) {
				continue
			}
			complete = false
			res.MissingFields = append(res.MissingFields, decl.Name)
		}
		res.PerSection[section.ID] = complete
		if complete {
			res.CompletedSections++
		}
	}
	return res
}

func roundPercent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
