package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	cfgerrors "github.com/randalmurphal/envokin/pkg/envokin/errors"
)

// ErrReservedName indicates a custom rule was registered under a built-in kind name.
var ErrReservedName = errors.New("name is reserved for a built-in kind")

// Registry holds named Custom rules so textual schemas (YAML, JSON, TOML
// files) can refer to them. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Custom
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Custom),
	}
}

// Register adds or replaces the rule stored under name.
func (r *Registry) Register(name string, c Custom) error {
	if name == "" {
		return errors.New("custom rule name is empty")
	}
	if c == nil {
		return fmt.Errorf("custom rule %q is nil", name)
	}
	if _, builtin := ParseKind(name); builtin {
		return fmt.Errorf("register %q: %w", name, ErrReservedName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = c
	return nil
}

// RegisterFunc registers a validator/transformer pair under name.
func (r *Registry) RegisterFunc(name string, validator func(key string, value any) bool, transformer func(value any) any) error {
	return r.Register(name, CustomFunc{Validator: validator, Transformer: transformer})
}

// Lookup returns the rule stored under name.
func (r *Registry) Lookup(name string) (Custom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.entries[name]
	return c, ok
}

// Unregister removes name from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Parse builds a Schema from a key -> tag mapping, as decoded from a schema
// file. Tags naming a built-in kind map to that kind; any other tag is looked
// up in reg (which may be nil). Unresolvable or non-string tags fail with a
// *errors.ValidationError wrapping ErrUnknownType.
func Parse(tags map[string]any, reg *Registry) (Schema, error) {
	s := make(Schema, len(tags))

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		tag, ok := tags[key].(string)
		if !ok {
			return nil, cfgerrors.NewValidationError(key, cfgerrors.ErrUnknownType,
				"%q has unknown schema type %q", key, fmt.Sprint(tags[key]))
		}
		if kind, ok := ParseKind(tag); ok {
			s[key] = kind
			continue
		}
		if reg != nil {
			if c, ok := reg.Lookup(tag); ok {
				s[key] = Use(c)
				continue
			}
		}
		return nil, cfgerrors.NewValidationError(key, cfgerrors.ErrUnknownType,
			"%q has unknown schema type %q", key, tag)
	}

	return s, nil
}
