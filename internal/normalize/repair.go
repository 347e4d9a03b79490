package normalize

import (
	"regexp"
	"strings"
)

// bareKey matches an unquoted object key right after '{' or ','.
var bareKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_]\w*)(\s*):`)

// repair rewrites the two malformations models produce most often:
// single-quoted strings and unquoted keys.
func repair(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	return bareKey.ReplaceAllString(s, `$1"$2"$3:`)
}
