package schema

import (
	"fmt"
	"sort"
)

// Kind is a built-in type tag.
type Kind string

// Built-in kinds.
const (
	Host      Kind = "host"
	Port      Kind = "port"
	URL       Kind = "url"
	Email     Kind = "email"
	Array     Kind = "array"
	CommaList Kind = "array:separator=,"
	IP        Kind = "ip"
	IP4       Kind = "ip4"
	IP6       Kind = "ip6"
	String    Kind = "string"
	Number    Kind = "number"
	Boolean   Kind = "boolean"
	JSON      Kind = "json"
)

var kinds = []Kind{Host, Port, URL, Email, Array, CommaList, IP, IP4, IP6, String, Number, Boolean, JSON}

// Kinds returns every built-in kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind returns the built-in kind named s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Valid reports whether k is a built-in kind.
func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok
}

func (Kind) isEntry() {}

// Custom is a user-supplied rule for one key.
type Custom interface {
	// Validates reports whether value is acceptable for key.
	Validates(key string, value any) bool
	// Transform converts an accepted value into its typed form.
	Transform(value any) any
}

// CustomFunc adapts a validator/transformer function pair to Custom.
// A nil Transformer passes the value through unchanged.
type CustomFunc struct {
	Validator   func(key string, value any) bool
	Transformer func(value any) any
}

// Validates implements Custom.
func (f CustomFunc) Validates(key string, value any) bool {
	if f.Validator == nil {
		return true
	}
	return f.Validator(key, value)
}

// Transform implements Custom.
func (f CustomFunc) Transform(value any) any {
	if f.Transformer == nil {
		return value
	}
	return f.Transformer(value)
}

// Entry is the rule attached to a schema key: either a Kind or a Custom
// wrapped with Use.
type Entry interface {
	isEntry()
}

type customEntry struct {
	custom Custom
}

func (customEntry) isEntry() {}

// Use wraps a Custom rule as a schema entry.
func Use(c Custom) Entry {
	return customEntry{custom: c}
}

// Func wraps a validator/transformer pair as a schema entry.
func Func(validator func(key string, value any) bool, transformer func(value any) any) Entry {
	return Use(CustomFunc{Validator: validator, Transformer: transformer})
}

// AsCustom returns the Custom rule held by e, if any.
func AsCustom(e Entry) (Custom, bool) {
	ce, ok := e.(customEntry)
	if !ok || ce.custom == nil {
		return nil, false
	}
	return ce.custom, true
}

// Schema maps configuration keys to their rules.
//
//	s := schema.Schema{
//	    "PORT":  schema.Port,
//	    "HOSTS": schema.CommaList,
//	    "MODE":  schema.Func(isMode, toLower),
//	}
type Schema map[string]Entry

// Keys returns the schema keys in sorted order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of s.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Validate checks that every entry is a built-in kind or a non-nil Custom.
func (s Schema) Validate() error {
	for _, key := range s.Keys() {
		if err := checkEntry(key, s[key]); err != nil {
			return err
		}
	}
	return nil
}

// Describe returns a short label for e: the kind name or "custom".
func Describe(e Entry) string {
	switch v := e.(type) {
	case Kind:
		return string(v)
	case customEntry:
		return "custom"
	default:
		return fmt.Sprintf("%T", e)
	}
}
