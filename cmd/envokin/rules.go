package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/randalmurphal/envokin/pkg/envokin/schema"
)

// builtinRules returns the named custom rules schema files may use in
// addition to the built-in kinds.
func builtinRules() *schema.Registry {
	reg := schema.NewRegistry()
	mustRegister(reg, "duration", isDuration, toDuration)
	mustRegister(reg, "log-level", isLogLevel, toLogLevel)
	mustRegister(reg, "lowercase", isString, toLower)
	return reg
}

func mustRegister(reg *schema.Registry, name string, validator func(string, any) bool, transformer func(any) any) {
	if err := reg.RegisterFunc(name, validator, transformer); err != nil {
		panic(err)
	}
}

func isDuration(_ string, v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := time.ParseDuration(strings.TrimSpace(s))
	return err == nil
}

func toDuration(v any) any {
	d, _ := time.ParseDuration(strings.TrimSpace(v.(string)))
	return d
}

func parseLevel(v any) (slog.Level, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, false
	}
	return level, true
}

func isLogLevel(_ string, v any) bool {
	_, ok := parseLevel(v)
	return ok
}

func toLogLevel(v any) any {
	level, _ := parseLevel(v)
	return strings.ToLower(level.String())
}

func isString(_ string, v any) bool {
	_, ok := v.(string)
	return ok
}

func toLower(v any) any {
	return strings.ToLower(v.(string))
}
