package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-profileforms/pkg/gateway"
	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/validate"
	"github.com/goliatone/go-profileforms/pkg/wizard"
)

// Runner walks a wizard section by section over a prompt driver, collecting
// values, surfacing validation errors inline, and submitting at the end.
type Runner struct {
	es     schema.EntitySchema
	ctrl   *wizard.Controller
	driver PromptDriver
}

// NewRunner builds a runner for one wizard instance.
func NewRunner(es schema.EntitySchema, ctrl *wizard.Controller, driver PromptDriver) *Runner {
	return &Runner{es: es, ctrl: ctrl, driver: driver}
}

// Run drives the wizard to submission. It loops on each section until it
// validates, then confirms and submits; server-side field errors send the
// walk back to the offending section with values intact.
func (r *Runner) Run(ctx context.Context) error {
	for {
		st := r.ctrl.State()
		if st.Submitted {
			return nil
		}
		section := r.es.Sections[st.Current]
		header := fmt.Sprintf("-- %s (%d/%d) --", section.Label, st.Current+1, len(r.es.Sections))
		if err := r.driver.Info(ctx, header); err != nil {
			return err
		}
		if err := r.promptSection(ctx, section); err != nil {
			return err
		}

		wasFinal := r.ctrl.State().OnFinalSection()
		st = r.ctrl.Dispatch(wizard.Next{})
		if len(st.FieldErrors) > 0 {
			if err := r.showErrors(ctx, st.FieldErrors); err != nil {
				return err
			}
			continue
		}
		for _, advisory := range st.Advisories {
			if err := r.driver.Info(ctx, "warning: "+advisory.Message); err != nil {
				return err
			}
		}
		if wasFinal {
			if err := r.submit(ctx); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) promptSection(ctx context.Context, section schema.Section) error {
	st := r.ctrl.State()
	for _, decl := range r.es.FieldsFor(section.ID) {
		var err error
		switch {
		case decl.Type == schema.FieldTypeArray:
			err = r.promptArray(ctx, decl, st)
		case len(decl.Enum) > 0:
			err = r.promptEnum(ctx, decl, st)
		case decl.Type == schema.FieldTypeBoolean:
			err = r.promptBool(ctx, decl, st)
		default:
			err = r.promptScalar(ctx, decl, st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptScalar(ctx context.Context, decl schema.Field, st wizard.State) error {
	value, err := r.driver.Input(ctx, InputConfig{
		Message: decl.DisplayLabel(),
		Default: record.String(st.Values[decl.Name]),
		Validator: func(input string) error {
			if messages := validate.Field(decl, input); len(messages) > 0 {
				return errors.New(messages[0])
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	r.ctrl.Dispatch(wizard.SetField{Name: decl.Name, Value: coerceInput(decl, value)})
	return nil
}

func (r *Runner) promptEnum(ctx context.Context, decl schema.Field, st wizard.State) error {
	defaultIndex := indexOf(decl.Enum, record.String(st.Values[decl.Name]))
	choice, err := r.driver.Select(ctx, SelectConfig{
		Message:      decl.DisplayLabel(),
		Options:      decl.Enum,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if choice >= 0 && choice < len(decl.Enum) {
		r.ctrl.Dispatch(wizard.SetField{Name: decl.Name, Value: decl.Enum[choice]})
	}
	return nil
}

func (r *Runner) promptBool(ctx context.Context, decl schema.Field, st wizard.State) error {
	current, _ := record.Bool(st.Values[decl.Name])
	value, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: decl.DisplayLabel() + "?",
		Default: current,
	})
	if err != nil {
		return err
	}
	r.ctrl.Dispatch(wizard.SetField{Name: decl.Name, Value: value})
	return nil
}

func (r *Runner) promptArray(ctx context.Context, decl schema.Field, st wizard.State) error {
	if items := st.Items(decl.Name); len(items) > 0 {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", decl.DisplayLabel(), strings.Join(items, ", "))); err != nil {
			return err
		}
	}
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Add %s (blank to finish)", decl.DisplayLabel()),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			return nil
		}
		r.ctrl.Dispatch(wizard.AddItem{Field: decl.Name, Value: value})
	}
}

func (r *Runner) submit(ctx context.Context) error {
	confirmed, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	if err := r.ctrl.Submit(ctx); err != nil {
		st := r.ctrl.State()
		if showErr := r.showErrors(ctx, st.FieldErrors); showErr != nil {
			return showErr
		}
		for _, msg := range st.FormErrors {
			if infoErr := r.driver.Info(ctx, "error: "+msg); infoErr != nil {
				return infoErr
			}
		}
		var validation *wizard.ValidationError
		if errors.As(err, &validation) {
			return nil // the loop resumes on the offending section
		}
		if _, ok := gateway.AsSubmissionError(err); ok {
			// Gateway rejections and transport failures are recoverable: the
			// errors are already on screen and the state keeps every value, so
			// resume the loop and re-offer the submit.
			return nil
		}
		return err
	}
	return r.driver.Info(ctx, "Submitted.")
}

func (r *Runner) showErrors(ctx context.Context, fieldErrs map[string][]string) error {
	for field, messages := range fieldErrs {
		for _, message := range messages {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", field, message)); err != nil {
				return err
			}
		}
	}
	return nil
}

// coerceInput converts prompt text into the declared field type so numeric
// fields round-trip as numbers rather than strings.
func coerceInput(decl schema.Field, value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	switch decl.Type {
	case schema.FieldTypeInteger, schema.FieldTypeNumber:
		if n, ok := record.Number(trimmed); ok {
			return n
		}
	}
	return trimmed
}
