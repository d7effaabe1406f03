package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileforms/pkg/gateway"
	"github.com/goliatone/go-profileforms/pkg/record"
	"github.com/goliatone/go-profileforms/pkg/schema"
	"github.com/goliatone/go-profileforms/pkg/validate"
)

var (
	// ErrSubmitInFlight rejects a duplicate submit while one is outstanding.
	ErrSubmitInFlight = errors.New("wizard: a submission is already in flight")
	// ErrStaleResponse marks a gateway response that arrived after the wizard
	// moved on to a different record; its result is discarded.
	ErrStaleResponse = errors.New("wizard: stale gateway response discarded")
	// ErrNotFinalSection rejects submits before the wizard reaches the last
	// section.
	ErrNotFinalSection = errors.New("wizard: submit is only available on the final section")
	// ErrViewOnly rejects submits from a read-only wizard.
	ErrViewOnly = errors.New("wizard: view mode cannot submit")
)

// ValidationError reports a failed pre-submit validation pass. The same
// messages are placed into State.FieldErrors for rendering.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "wizard: validation failed"
	}
	return fmt.Sprintf("wizard: validation failed for %d field(s)", len(e.Fields))
}

// currentYear is swappable so transition tests can pin the calendar.
var currentYear = func() int { return time.Now().Year() }

// Options configure a Controller.
type Options struct {
	Mode    Mode
	Initial record.Record
	Rules   []validate.Rule
	Logger  *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects create, edit or view behaviour (default create).
func WithMode(mode Mode) Option {
	return func(o *Options) { o.Mode = mode }
}

// WithInitialData seeds the wizard with an existing record.
func WithInitialData(rec record.Record) Option {
	return func(o *Options) { o.Initial = rec }
}

// WithRules overrides the cross-field rule set (default: the built-in rules
// for the schema's kind).
func WithRules(rules []validate.Rule) Option {
	return func(o *Options) { o.Rules = rules }
}

// WithLogger attaches a logger for submission diagnostics. Field validation
// output stays out of the log; it is rendered to the user instead.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Controller owns one wizard's state and the submission lifecycle around it.
// Each record being edited gets its own Controller; nothing is shared across
// instances.
type Controller struct {
	es    schema.EntitySchema
	rules []validate.Rule
	gw    gateway.Gateway
	log   *zap.Logger

	mu          sync.Mutex
	st          State
	recordID    string
	submitToken string
}

// New constructs a controller over an entity schema and a gateway.
func New(es schema.EntitySchema, gw gateway.Gateway, fns ...Option) *Controller {
	opts := Options{Mode: ModeCreate}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Rules == nil {
		opts.Rules = validate.RulesFor(es.Kind)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		es:    es,
		rules: opts.Rules,
		gw:    gw,
		log:   opts.Logger,
		st:    NewState(es, opts.Mode, opts.Initial),
	}
}

// Load constructs an edit-mode controller seeded from the gateway's current
// record. An absent record behaves as "all sections empty", not as an error.
func Load(ctx context.Context, es schema.EntitySchema, gw gateway.Gateway, recordID string, fns ...Option) (*Controller, error) {
	initial, err := gw.Fetch(ctx, recordID)
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return nil, fmt.Errorf("wizard: load record %s: %w", recordID, err)
	}
	opts := append([]Option{WithMode(ModeEdit), WithInitialData(initial)}, fns...)
	ctrl := New(es, gw, opts...)
	ctrl.recordID = recordID
	return ctrl, nil
}

// State returns a snapshot of the wizard state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.Clone()
}

// RecordID returns the id of the record being edited ("" before creation).
func (c *Controller) RecordID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordID
}

// Dispatch applies one user event and returns the resulting snapshot.
func (c *Controller) Dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st = Apply(c.es, c.rules, c.st, ev)
	return c.st.Clone()
}

// Submit re-validates every section plus the cross-field rules, then hands
// the assembled record to the gateway. On server rejection the reported
// field errors merge into State.FieldErrors and the wizard returns to the
// first offending section with all values intact. Only one submission may be
// in flight; a response that arrives after Discard (or after a newer
// submission superseded it) is dropped.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.st.Mode == ModeView {
		c.mu.Unlock()
		return ErrViewOnly
	}
	if c.st.Pending {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !c.st.OnFinalSection() {
		c.mu.Unlock()
		return ErrNotFinalSection
	}

	errs := validate.Entity(c.es, c.st.Values)
	ruleErrs, advisories := validate.Evaluate(c.rules, c.st.Values)
	for field, messages := range ruleErrs {
		if errs == nil {
			errs = make(map[string][]string)
		}
		errs[field] = append(errs[field], messages...)
	}
	c.st.Advisories = advisories
	if len(errs) > 0 {
		c.st.FieldErrors = errs
		c.returnToOffendingSection(errs)
		c.mu.Unlock()
		return &ValidationError{Fields: errs}
	}

	token := uuid.NewString()
	c.submitToken = token
	c.st.Pending = true
	recordID := c.recordID
	patch := c.st.Values.Clone()
	c.mu.Unlock()

	result, err := c.gw.Submit(ctx, recordID, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitToken != token {
		c.log.Debug("wizard: dropping stale gateway response",
			zap.String("recordId", recordID))
		return ErrStaleResponse
	}
	c.submitToken = ""
	c.st.Pending = false

	if err != nil {
		return c.handleSubmitError(recordID, err)
	}

	c.st.Submitted = true
	c.st.FieldErrors = nil
	c.st.FormErrors = nil
	if result != nil {
		if id, ok := result["id"].(string); ok && id != "" {
			c.recordID = id
		}
	}
	return nil
}

func (c *Controller) handleSubmitError(recordID string, err error) error {
	c.log.Error("wizard: submission failed",
		zap.String("recordId", recordID),
		zap.Error(err))

	sub, ok := gateway.AsSubmissionError(err)
	if !ok {
		c.st.FormErrors = append(c.st.FormErrors, "Submission failed, please try again")
		return err
	}

	known := make(map[string]struct{}, len(c.es.Fields))
	for name := range c.es.Fields {
		known[name] = struct{}{}
	}
	mapping := gateway.NormalizeFieldErrors(sub.FieldErrors, known)

	if len(mapping.Fields) > 0 {
		if c.st.FieldErrors == nil {
			c.st.FieldErrors = make(map[string][]string, len(mapping.Fields))
		}
		for field, messages := range mapping.Fields {
			c.st.FieldErrors[field] = append(c.st.FieldErrors[field], messages...)
		}
		c.returnToOffendingSection(mapping.Fields)
	}
	c.st.FormErrors = append(c.st.FormErrors, mapping.Form...)
	if sub.Message != "" {
		c.st.FormErrors = append(c.st.FormErrors, sub.Message)
	}
	return err
}

// returnToOffendingSection moves the cursor to the earliest section owning
// one of the failing fields. Fields no section claims leave the cursor alone.
func (c *Controller) returnToOffendingSection(fieldErrs map[string][]string) {
	target := -1
	for field := range fieldErrs {
		idx := c.es.SectionIndex(field)
		if idx < 0 {
			continue
		}
		if target == -1 || idx < target {
			target = idx
		}
	}
	if target >= 0 {
		c.st.Current = target
		c.st.Visited[target] = true
	}
}

// Discard abandons the wizard. Any in-flight gateway response is dropped on
// arrival so a stale result can never apply to a record opened later.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitToken = ""
	c.st.Pending = false
}
