package dockerfile

import (
	"sort"
	"strings"
)

// envLines renders one ENV instruction per variable, sorted by name so the
// output is deterministic regardless of map iteration order.
func envLines(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(vars))
	for _, name := range names {
		lines = append(lines, "ENV "+name+"="+quoteEnvValue(vars[name]))
	}
	return strings.Join(lines, "\n")
}

func quoteEnvValue(value string) string {
	if value == "" || strings.ContainsAny(value, " \t") {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}
