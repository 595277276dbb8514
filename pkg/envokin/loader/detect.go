package loader

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
)

// FileType is the format the loader recognized.
type FileType int

const (
	// Unknown content is neither JSON nor ENV.
	Unknown FileType = iota
	// JSON content starts with "{" and a line break.
	JSON
	// ENV content consists of KEY=value lines.
	ENV
	// YAML is selected by the .yaml/.yml extension.
	YAML
	// TOML is selected by the .toml extension.
	TOML
)

// String returns the lowercase format name.
func (t FileType) String() string {
	switch t {
	case JSON:
		return "json"
	case ENV:
		return "env"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

var (
	jsonUnix    = []byte{0x7b, 0x0a}
	jsonWindows = []byte{0x7b, 0x0d, 0x0a}

	envLine = regexp.MustCompile(`^[A-Z0-9_]+=`)
)

// Detect sniffs the content format.
//
// JSON is recognized only when the content begins with "{" immediately
// followed by "\n" or "\r\n"; a one-line object or leading whitespace is not
// JSON. Otherwise the content is ENV when every line that is neither blank nor
// a "#" comment starts with KEY= (KEY in [A-Z0-9_]). Anything else is Unknown.
func Detect(data []byte) FileType {
	if bytes.HasPrefix(data, jsonUnix) || bytes.HasPrefix(data, jsonWindows) {
		return JSON
	}
	if isEnv(data) {
		return ENV
	}
	return Unknown
}

func isEnv(data []byte) bool {
	for _, line := range splitLines(data) {
		trimmed := strings.TrimSpace(line)
		if skippable(trimmed) {
			continue
		}
		if !envLine.MatchString(trimmed) {
			return false
		}
	}
	return true
}

// byExtension returns YAML or TOML for files whose extension names them, and
// Unknown for everything else (including .json, which is sniffed).
func byExtension(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return Unknown
	}
}

// splitLines splits on "\n"; a preceding "\r" is left on the line and removed
// by the callers' trimming.
func splitLines(data []byte) []string {
	content := strings.TrimPrefix(string(data), "\ufeff")
	return strings.Split(content, "\n")
}

func skippable(trimmed string) bool {
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
