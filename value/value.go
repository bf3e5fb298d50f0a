// Package value canonicalizes leaf text values per spec section 4.B:
// CBV URN rewriting, numeric literal canonicalization, and GS1 identifier
// normalization, applied in that order. Timestamp rewriting is a separate
// entry point invoked by the serializer only for elements whose name
// contains "time" but not "offset".
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/trackvision/epcis-hashgen/identifier"
)

// cbvPrefixes is the literal URN->URL substitution table (spec 4.B.1).
// Grounded on hash_generator.py's try_format_web_vocabulary, with the
// rewrite targets taken from the GS1 Web Vocabulary URLs this
// specification names (https://ref.gs1.org/cbv/...) rather than the
// older https://ns.gs1.org/voc/... targets the 2020-era Python reference
// emits -- see DESIGN.md.
var cbvPrefixes = []struct{ from, to string }{
	{"urn:epcglobal:cbv:bizstep:", "https://ref.gs1.org/cbv/BizStep-"},
	{"urn:epcglobal:cbv:disp:", "https://ref.gs1.org/cbv/Disp-"},
	{"urn:epcglobal:cbv:btt:", "https://ref.gs1.org/cbv/BTT-"},
	{"urn:epcglobal:cbv:sdt:", "https://ref.gs1.org/cbv/SDT-"},
	{"urn:epcglobal:cbv:er:", "https://ref.gs1.org/cbv/ER-"},
}

// rewriteVocabulary replaces a CBV URN prefix with its web vocabulary
// equivalent. At most one prefix can match since they are mutually
// exclusive by construction.
func rewriteVocabulary(text string) string {
	for _, p := range cbvPrefixes {
		if strings.HasPrefix(text, p.from) {
			return p.to + strings.TrimPrefix(text, p.from)
		}
	}
	return text
}

// canonicalizeNumeric re-emits a numeric literal with no leading zeros,
// no leading '+', and no trailing ".0", leaving non-numeric strings
// untouched. Ported from hash_generator.try_format_numeric.
func canonicalizeNumeric(text string) string {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return text
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Canonicalize applies URN rewrite -> numeric canonicalization ->
// identifier normalization, in that order (spec 4.B, "Order of
// application matters").
func Canonicalize(text string) string {
	text = rewriteVocabulary(text)
	text = canonicalizeNumeric(text)
	if normalized := identifier.Normalize(text); normalized != "" {
		return normalized
	}
	return text
}

// IsTimestampElement reports whether elementName should be routed through
// CanonicalizeTimestamp rather than Canonicalize (spec 4.B.4): the name
// contains "time" case-insensitively and does not contain "offset".
func IsTimestampElement(elementName string) bool {
	lower := strings.ToLower(elementName)
	return strings.Contains(lower, "time") && !strings.Contains(lower, "offset")
}
