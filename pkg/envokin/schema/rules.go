package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ip6Segment   = regexp.MustCompile(`^[0-9a-fA-F]{0,4}$`)
)

// falsy reports whether v counts as "not provided": nil, an empty string,
// false, a numeric zero, NaN, or a nil pointer, map or slice.
func falsy(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case bool:
		return !val
	}
	if f, ok := toFloat(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// toFloat converts Go numeric values. Strings are not numbers here.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// numeric converts a number or a decimal string to float64. NaN is rejected.
func numeric(v any) (float64, bool) {
	f, ok := toFloat(v)
	if !ok {
		s, isString := v.(string)
		if !isString {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isHost(v any) bool {
	s, ok := v.(string)
	return ok && (isURL(s) || isIP(s))
}

// asPort returns the port for numeric values in [0, 65535]: an int when
// the value is integral, the float64 itself otherwise.
func asPort(v any) (any, bool) {
	f, ok := numeric(v)
	if !ok || f < 0 || f > 65535 {
		return nil, false
	}
	if f == math.Trunc(f) {
		return int(f), true
	}
	return f, true
}

func isURL(v any) bool {
	s, ok := v.(string)
	return ok && s != "" && validate.Var(s, "url") == nil
}

func isEmail(v any) bool {
	s, ok := v.(string)
	return ok && emailPattern.MatchString(s)
}

func isArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isIP(v any) bool {
	return isIP4(v) || isIP6(v)
}

// isIP4 requires four dot-separated decimal segments, each in [0, 255].
func isIP4(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	segments := strings.Split(s, ".")
	if len(segments) != 4 {
		return false
	}
	for _, seg := range segments {
		if seg == "" || strings.Trim(seg, "0123456789") != "" {
			return false
		}
		n, err := strconv.ParseUint(seg, 10, 16)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// isIP6 requires one to eight colon-separated segments of up to four hex
// digits. Empty segments are allowed, so "::1" passes.
func isIP6(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	segments := strings.Split(s, ":")
	if len(segments) < 1 || len(segments) > 8 {
		return false
	}
	for _, seg := range segments {
		if !ip6Segment.MatchString(seg) {
			return false
		}
	}
	return true
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// asBoolean accepts bools, the strings true/false/1/0/t/f and the numbers 0/1.
// Matching is case-sensitive.
func asBoolean(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch val {
		case "true", "1", "t":
			return true, true
		case "false", "0", "f":
			return false, true
		}
		return false, false
	}
	if f, ok := toFloat(v); ok {
		switch f {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// asJSON passes composite values through and decodes JSON strings.
func asJSON(v any) (any, bool) {
	if s, ok := v.(string); ok {
		if s == "" || !json.Valid([]byte(s)) {
			return nil, false
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, false
		}
		return out, true
	}
	if v == nil {
		return nil, false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return v, true
	}
	return nil, false
}
