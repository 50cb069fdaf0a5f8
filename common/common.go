package common

import (
	"strings"
)

// Splits a comma separated string, e.g. "qemu, vmware,,docker", into its
// trimmed non-empty elements.
func SplitCommaSep(commaSepString string) []string {
	out := []string{}
	for _, s := range strings.Split(commaSepString, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
