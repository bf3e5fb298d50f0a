package identifier

import (
	"regexp"
	"strings"
)

// reDLShape recognizes any GS1 Digital Link URI carrying a supported AI
// (numeric or short-name) as its first path segment.
var reDLShape = regexp.MustCompile(`^https?://[^/]+/(01|gtin|8006|itip|8010|cpid|414|gln|417|party|8017|gsrnp|8018|gsrn|255|gcn|00|sscc|253|gdti|401|ginc|402|gsin|8003|grai|8004|giai)/`)

var shortNameToAI = []struct{ short, ai string }{
	{"/gtin/", "/01/"},
	{"/itip/", "/8006/"},
	{"/cpid/", "/8010/"},
	{"/gln/", "/414/"},
	{"/party/", "/417/"},
	{"/gsrnp/", "/8017/"},
	{"/gsrn/", "/8018/"},
	{"/gcn/", "/255/"},
	{"/sscc/", "/00/"},
	{"/gdti/", "/253/"},
	{"/ginc/", "/401/"},
	{"/gsin/", "/402/"},
	{"/grai/", "/8003/"},
	{"/giai/", "/8004/"},
	{"/cpv/", "/22/"},
	{"/lot/", "/10/"},
	{"/ser/", "/21/"},
}

var canonicalAIs = []string{"/00/", "/01/", "/253/", "/255/", "/401/", "/402/", "/414/", "/417/", "/8003/", "/8004/", "/8006/", "/8010/", "/8017/", "/8018/"}

var reCanonicalDomain = regexp.MustCompile(`^https://id\.gs1\.org/(01|8006|8010|414|417|8017|8018|255|00|253|401|402|8003|8004)/`)

var reGTIN14 = regexp.MustCompile(`^https://id\.gs1\.org/01/\d{14}`)
var reGTIN13 = regexp.MustCompile(`^https://id\.gs1\.org/01/\d{13}`)
var reGTIN12 = regexp.MustCompile(`^https://id\.gs1\.org/01/\d{12}`)
var reGTIN8 = regexp.MustCompile(`^https://id\.gs1\.org/01/\d{8}`)

// reWellFormed is the final sanity check: only these exact AI shapes are
// accepted as normalized output (spec 4.A.7).
var reWellFormed = regexp.MustCompile(`^https://id\.gs1\.org/(` +
	`00/\d{18}` + `|` +
	`01/\d{14}/21/[^/?#]{0,20}` + `|` +
	`01/\d{14}/10/[^/?#]{0,20}` + `|` +
	`01/\d{14}` + `|` +
	`01/\d{14}/235/[^/?#]{0,28}` + `|` +
	`253/\d{13}[^/?#]{0,17}` + `|` +
	`255/\d{13}\d{0,12}` + `|` +
	`401/[^/?#]{0,30}` + `|` +
	`402/\d{17}` + `|` +
	`414/\d{13}` + `|` +
	`414/\d{13}/254/[^/?#]{0,20}` + `|` +
	`417/\d{13}` + `|` +
	`8003/\d{14}[^/?#]{0,16}` + `|` +
	`8004/[^/?#]{0,30}` + `|` +
	`8006/\d{18}/21/[^/?#]{0,20}` + `|` +
	`8006/\d{18}/10/[^/?#]{0,20}` + `|` +
	`8006/\d{18}` + `|` +
	`8010/[^/?#]{0,30}/8011/\d{0,12}` + `|` +
	`8010/[^/?#]{0,30}` + `|` +
	`8017/\d{18}` + `|` +
	`8018/\d{18}` +
	`)$`)

// normalizeDigitalLink converts an already-Digital-Link-shaped URI into
// its canonical, most-granular, query/fragment-free form. Ported from
// dl_normaliser.normaliser's second half (the "GS1 DL URIs" branch).
func normalizeDigitalLink(uri string) string {
	if !reDLShape.MatchString(uri) {
		return ""
	}

	if idx := strings.IndexAny(uri, "?#"); idx >= 0 {
		uri = uri[:idx]
	}

	for _, sn := range shortNameToAI {
		uri = strings.ReplaceAll(uri, sn.short, sn.ai)
	}

	if !reCanonicalDomain.MatchString(uri) {
		for _, ai := range canonicalAIs {
			if i := strings.Index(uri, ai); i >= 0 {
				uri = "https://id.gs1.org" + uri[i:]
				break
			}
		}
	}

	switch {
	case reGTIN14.MatchString(uri):
		// already 14 digits
	case reGTIN13.MatchString(uri):
		uri = strings.Replace(uri, "/01/", "/01/0", 1)
	case reGTIN12.MatchString(uri):
		uri = strings.Replace(uri, "/01/", "/01/00", 1)
	case reGTIN8.MatchString(uri):
		uri = strings.Replace(uri, "/01/", "/01/000000", 1)
	}

	// strip CPV (/22/...) segment entirely -- it is never part of identity.
	if i := strings.Index(uri, "/22/"); i >= 0 {
		rest := uri[i+4:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			uri = uri[:i] + rest[j:]
		} else {
			uri = uri[:i]
		}
	}

	// lowest granularity only: drop /10/{lot} when /21/{serial} also present.
	if i := strings.Index(uri, "/10/"); i >= 0 {
		rest := uri[i+4:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			uri = uri[:i] + rest[j:]
		}
	}

	if !reWellFormed.MatchString(uri) {
		return ""
	}
	return uri
}
