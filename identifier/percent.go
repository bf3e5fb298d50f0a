package identifier

import "strings"

// percentEncode applies the GS1 Digital Link percent-encoding table
// (spec 4.A.4) to the URL-unsafe characters permitted inside EPC URI
// serial/extension segments.
func percentEncode(s string) string {
	replacer := strings.NewReplacer(
		"!", "%21",
		"(", "%28",
		")", "%29",
		"*", "%2A",
		"+", "%2B",
		",", "%2C",
		":", "%3A",
	)
	return replacer.Replace(s)
}
