// Package wizard drives section-by-section editing of a record: a current
// section pointer, per-section completion and error state, forward-navigation
// gating, and the buffered tag-list editor for array fields. State is an
// explicit, serializable value and every user interaction is a pure
// (state, event) -> state transition, so the whole flow unit-tests without a
// UI harness.
package wizard

import (
	"strings"

	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/validate"
)

// Mode selects how the wizard behaves. Create and edit validate and gate
// navigation; view unlocks free section jumps and ignores edits.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// State is the full wizard state. It belongs to exactly one Controller; no
// other component mutates it directly.
type State struct {
	Kind      string              `json:"kind"`
	Mode      Mode                `json:"mode"`
	Current   int                 `json:"current"`
	Visited   []bool              `json:"visited"`
	Completed []bool              `json:"completed"`
	// FieldErrors holds both local validation failures and server-reported
	// field errors, keyed by field name, so the UI renders them uniformly.
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	FormErrors  []string            `json:"formErrors,omitempty"`
	Advisories  []validate.Advisory `json:"advisories,omitempty"`
	// Buffers holds the working copy of each array ("tag list") field.
	Buffers map[string][]string `json:"buffers,omitempty"`
	Values  record.Record       `json:"values"`
	Pending bool                `json:"pending"`
	// Submitted flips once the gateway acknowledges the final submission;
	// the state is discarded afterwards.
	Submitted bool `json:"submitted"`
}

// Event is a user interaction the wizard reduces over its state.
type Event interface{ isEvent() }

// SetField writes one field value in the current record draft.
type SetField struct {
	Name  string
	Value any
}

// Next validates the current section and, on success, advances.
type Next struct{}

// Previous steps back without validating and without clearing completion.
type Previous struct{}

// Jump selects a section directly. Allowed in view mode, or when the target
// has already been visited.
type Jump struct{ Index int }

// AddItem appends a trimmed, deduplicated value to an array field's buffer,
// capped at the field's max cardinality (an over-cap add is a no-op).
type AddItem struct {
	Field string
	Value string
}

// RemoveItem drops one entry from an array field's buffer by index.
type RemoveItem struct {
	Field string
	Index int
}

func (SetField) isEvent()   {}
func (Next) isEvent()       {}
func (Previous) isEvent()   {}
func (Jump) isEvent()       {}
func (AddItem) isEvent()    {}
func (RemoveItem) isEvent() {}

// NewState seeds wizard state from initial data: empty for create mode,
// populated for edit/view. Array buffers are seeded from the initial record.
func NewState(es schema.EntitySchema, mode Mode, initial record.Record) State {
	st := State{
		Kind:      es.Kind,
		Mode:      mode,
		Visited:   make([]bool, len(es.Sections)),
		Completed: make([]bool, len(es.Sections)),
		Buffers:   make(map[string][]string),
		Values:    initial.Clone(),
	}
	if st.Values == nil {
		st.Values = record.New()
	}
	if len(st.Visited) > 0 {
		st.Visited[0] = true
	}
	for name, decl := range es.Fields {
		if decl.Type == schema.FieldTypeArray {
			if items := st.Values.Strings(name); items != nil {
				st.Buffers[name] = items
			}
		}
	}
	return st
}

// Clone deep-copies the state so snapshots stay independent.
func (st State) Clone() State {
	out := st
	out.Visited = append([]bool(nil), st.Visited...)
	out.Completed = append([]bool(nil), st.Completed...)
	out.FormErrors = append([]string(nil), st.FormErrors...)
	out.Advisories = append([]validate.Advisory(nil), st.Advisories...)
	out.Values = st.Values.Clone()
	if st.FieldErrors != nil {
		out.FieldErrors = make(map[string][]string, len(st.FieldErrors))
		for k, v := range st.FieldErrors {
			out.FieldErrors[k] = append([]string(nil), v...)
		}
	}
	if st.Buffers != nil {
		out.Buffers = make(map[string][]string, len(st.Buffers))
		for k, v := range st.Buffers {
			out.Buffers[k] = append([]string(nil), v...)
		}
	}
	return out
}

// Items returns the current buffer for an array field.
func (st State) Items(field string) []string {
	return append([]string(nil), st.Buffers[field]...)
}

// OnFinalSection reports whether the wizard sits on the last section.
func (st State) OnFinalSection() bool {
	return st.Current == len(st.Visited)-1
}

// Apply reduces one event over the state and returns the next state. The
// input state is never mutated. Events are ignored while a submission is
// pending or after the terminal submitted state.
func Apply(es schema.EntitySchema, rules []validate.Rule, st State, ev Event) State {
	if st.Pending || st.Submitted {
		return st.Clone()
	}

	next := st.Clone()
	switch event := ev.(type) {
	case SetField:
		applySetField(es, &next, event)
	case Next:
		applyNext(es, rules, &next)
	case Previous:
		if next.Current > 0 {
			next.Current--
		}
	case Jump:
		applyJump(&next, event.Index)
	case AddItem:
		applyAddItem(es, &next, event)
	case RemoveItem:
		applyRemoveItem(&next, event)
	}
	return next
}

func applySetField(es schema.EntitySchema, st *State, ev SetField) {
	if st.Mode == ModeView {
		return
	}
	name := strings.TrimSpace(ev.Name)
	if name == "" {
		return
	}
	st.Values[name] = ev.Value
	delete(st.FieldErrors, name)

	// UX affordance: schemas that pair a graduation year with an academic gap
	// get the gap pre-filled from the year, so the consistency rule rarely
	// fires. The rule itself still runs on submit.
	if name == "graduationYear" && !st.Values.Has("currentAcademicGap") {
		if _, declared := es.Fields["currentAcademicGap"]; declared {
			if year, ok := record.Number(ev.Value); ok {
				st.Values["currentAcademicGap"] = validate.ComputedAcademicGap(int(year), currentYear())
			}
		}
	}
}

func applyNext(es schema.EntitySchema, rules []validate.Rule, st *State) {
	if st.Current >= len(es.Sections) {
		return
	}
	section := es.Sections[st.Current]

	if st.Mode == ModeView {
		advance(st, len(es.Sections))
		return
	}

	errs := validate.Section(es, section.ID, st.Values)

	// Cross-field rules only run when leaving the final section, so earlier
	// sections validate in isolation and multi-section groups do not flash
	// errors mid-flow.
	var advisories []validate.Advisory
	if st.OnFinalSection() {
		ruleErrs, ruleAdvisories := validate.Evaluate(rules, st.Values)
		advisories = ruleAdvisories
		for field, messages := range ruleErrs {
			if errs == nil {
				errs = make(map[string][]string)
			}
			errs[field] = append(errs[field], messages...)
		}
	}

	if len(errs) > 0 {
		st.FieldErrors = errs
		return
	}

	st.FieldErrors = nil
	st.Advisories = advisories
	st.Completed[st.Current] = true
	advance(st, len(es.Sections))
}

func advance(st *State, total int) {
	if st.Current < total-1 {
		st.Current++
		st.Visited[st.Current] = true
	}
}

func applyJump(st *State, index int) {
	if index < 0 || index >= len(st.Visited) {
		return
	}
	if st.Mode != ModeView && !st.Visited[index] {
		return
	}
	st.Current = index
	st.Visited[index] = true
}

func applyAddItem(es schema.EntitySchema, st *State, ev AddItem) {
	if st.Mode == ModeView {
		return
	}
	decl, ok := es.FieldDecl(ev.Field)
	if !ok || decl.Type != schema.FieldTypeArray {
		return
	}
	value := strings.TrimSpace(ev.Value)
	if value == "" {
		return
	}
	items := st.Buffers[ev.Field]
	for _, existing := range items {
		if strings.EqualFold(existing, value) {
			return
		}
	}
	if decl.MaxItems != nil && len(items) >= *decl.MaxItems {
		return
	}
	items = append(items, value)
	st.Buffers[ev.Field] = items
	st.Values[ev.Field] = append([]string(nil), items...)
	delete(st.FieldErrors, ev.Field)
}

func applyRemoveItem(st *State, ev RemoveItem) {
	if st.Mode == ModeView {
		return
	}
	items := st.Buffers[ev.Field]
	if ev.Index < 0 || ev.Index >= len(items) {
		return
	}
	items = append(items[:ev.Index], items[ev.Index+1:]...)
	st.Buffers[ev.Field] = items
	if len(items) == 0 {
		delete(st.Values, ev.Field)
	} else {
		st.Values[ev.Field] = append([]string(nil), items...)
	}
}
