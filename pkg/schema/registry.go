package schema

import (
	"fmt"
	"strings"
	"sync"
)

// Built-in entity kinds shipped with the registry.
const (
	KindStudentProfile = "student-profile"
	KindScholarship    = "scholarship"
)

// Registry holds entity schemas keyed by kind. The zero registry is empty;
// NewRegistry returns one with the built-in kinds registered. Registration
// replaces whole schemas — individual sections are never mutated at runtime.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]EntitySchema
}

// NewRegistry constructs a registry with the built-in student-profile and
// scholarship schemas registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	if err := reg.Register(StudentProfile()); err != nil {
		panic(err)
	}
	if err := reg.Register(Scholarship()); err != nil {
		panic(err)
	}
	return reg
}

// Register validates and stores an entity schema. The latest registration
// for a kind wins.
func (r *Registry) Register(es EntitySchema) error {
	if r == nil {
		return fmt.Errorf("schema: registry is nil")
	}
	if err := es.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.schemas == nil {
		r.schemas = make(map[string]EntitySchema)
	}
	r.schemas[es.Kind] = es
	return nil
}

// Get looks up the schema for an entity kind.
func (r *Registry) Get(kind string) (EntitySchema, bool) {
	if r == nil {
		return EntitySchema{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	es, ok := r.schemas[strings.TrimSpace(kind)]
	return es, ok
}

// Sections returns the ordered section list for an entity kind, or nil when
// the kind is unknown.
func (r *Registry) Sections(kind string) []Section {
	es, ok := r.Get(kind)
	if !ok {
		return nil
	}
	return append([]Section(nil), es.Sections...)
}

// Kinds returns the registered entity kinds.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.schemas))
	for kind := range r.schemas {
		out = append(out, kind)
	}
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry seeded with the built-in kinds.
func Default() *Registry {
	return defaultRegistry
}

// Get resolves a kind against the default registry.
func Get(kind string) (EntitySchema, bool) {
	return defaultRegistry.Get(kind)
}

// Sections resolves the ordered section list against the default registry.
func Sections(kind string) []Section {
	return defaultRegistry.Sections(kind)
}
