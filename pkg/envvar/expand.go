// Package envvar expands ${VAR} and ${VAR:-default} placeholders in manifest templates.
package envvar

import (
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default}.
// Groups: 1 = variable name, 2 = optional default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

const (
	minGroupsForVarName = 2
	defaultSyntaxMarker = ":-"
)

// Lookup resolves a variable name the way os.LookupEnv does.
type Lookup func(name string) (string, bool)

// Environment resolves variables from the process environment.
func Environment() Lookup {
	return os.LookupEnv
}

// Vars resolves variables from vars first and the process environment second.
func Vars(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		if value, ok := vars[name]; ok {
			return value, true
		}

		return os.LookupEnv(name)
	}
}

// Expand replaces placeholders in value. An unset variable takes its default when one is
// given; otherwise it becomes the empty string and a warning is logged.
func Expand(value string, lookup Lookup) string {
	if value == "" {
		return value
	}

	if lookup == nil {
		lookup = Environment()
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		if len(groups) < minGroupsForVarName {
			return match
		}

		if envValue, ok := lookup(groups[1]); ok {
			return envValue
		}

		return resolveDefault(match, groups)
	})
}

// ExpandBytes is Expand for file content.
func ExpandBytes(data []byte, lookup Lookup) []byte {
	return []byte(Expand(string(data), lookup))
}

// Unresolved lists the variables in value that lookup cannot resolve and that carry no
// default, in order of first appearance. Expand turns each of them into "".
func Unresolved(value string, lookup Lookup) []string {
	if lookup == nil {
		lookup = Environment()
	}

	var names []string

	seen := map[string]bool{}

	for _, groups := range pattern.FindAllStringSubmatch(value, -1) {
		name := groups[1]
		if seen[name] || strings.Contains(groups[0], defaultSyntaxMarker) {
			continue
		}

		seen[name] = true

		if _, ok := lookup(name); !ok {
			names = append(names, name)
		}
	}

	return names
}

func resolveDefault(match string, groups []string) string {
	if len(groups) > 2 && groups[2] != "" {
		return groups[2]
	}

	// ${VAR:-} is an explicit empty default.
	if strings.Contains(match, defaultSyntaxMarker) {
		return ""
	}

	slog.Warn("environment variable not set", "variable", groups[1])

	return ""
}
