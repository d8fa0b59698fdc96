package util

import "strings"

// SplitCommaSeparated returns the trimmed, non-empty items of a comma
// list, or nil when there are none.
func SplitCommaSeparated(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExpandTemplate substitutes {key} placeholders in tmpl. Unknown
// placeholders are left in place.
//
//	ExpandTemplate("PL_{name}_{dir}", map[string]string{"name": "ISP1", "dir": "IN"}) -> "PL_ISP1_IN"
func ExpandTemplate(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
