// Package identifier collapses every supported GS1 identifier form (EPC
// URI, EPC Class URI, EPC Pattern URI, GS1 Digital Link URI) into a
// single canonical GS1 Digital Link URI, per spec section 4.A. Normalize
// tries the families one after another, and each family picks among its
// own regexes with a switch; the matchers are not held in a table.
package identifier

import "strings"

// Normalize returns the canonical GS1 Digital Link URI for uri, or "" if
// uri is not a recognizable GS1 identifier. Normalize never errors: an
// unrecognized input is simply passed through unchanged by the caller.
func Normalize(uri string) string {
	if !strings.Contains(uri, ".") {
		return ""
	}

	out := normalizeEPCURI(uri)
	if out == "" {
		out = normalizeEPCClassURI(uri)
	}
	if out == "" {
		out = normalizeEPCPatternURI(uri)
	}
	if out == "" {
		out = normalizeDigitalLink(uri)
	}
	if out == "" || !reWellFormed.MatchString(out) {
		return ""
	}
	return out
}
