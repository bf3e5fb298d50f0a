package identifier

import (
	"regexp"
	"strconv"
	"strings"
)

// safeChar matches the GS1 "safe" serial/extension character set used
// throughout EPC URIs: letters, digits, a handful of punctuation marks,
// and percent-encoded octets. This is a pragmatic superset of the
// byte-exact character classes enumerated in the GS1 reference
// implementation's regexes (dl_normaliser.py) -- every value the
// reference accepts, this accepts too.
const safeChar = `(?:%[0-9A-Fa-f]{2}|[!'()*+,.0-9A-Za-z:;=_-])`

var (
	reSGTIN = regexp.MustCompile(`^urn:epc:id:sgtin:(\d{6,12})\.(\d{1,7})\.` + safeChar + `{1,20}$`)
	reSSCC  = regexp.MustCompile(`^urn:epc:id:sscc:(\d{6,12})\.(\d{5,11})$`)
	reSGLN  = regexp.MustCompile(`^urn:epc:id:sgln:(\d{6,12})\.(\d{0,6})\.` + safeChar + `{1,20}$`)
	reGRAI  = regexp.MustCompile(`^urn:epc:id:grai:(\d{6,12})\.(\d{0,6})\.` + safeChar + `{1,16}$`)
	reGIAI  = regexp.MustCompile(`^urn:epc:id:giai:(\d{6,12})\.` + safeChar + `{1,24}$`)
	reGSRN  = regexp.MustCompile(`^urn:epc:id:gsrn:(\d{6,12})\.(\d{5,11})$`)
	reGSRNP = regexp.MustCompile(`^urn:epc:id:gsrnp:(\d{6,12})\.(\d{5,11})$`)
	reGDTI  = regexp.MustCompile(`^urn:epc:id:gdti:(\d{6,12})\.(\d{0,6})` + safeChar + `{1,20}$`)
	reCPI   = regexp.MustCompile(`^urn:epc:id:cpi:(\d{6,12})\.` + safeChar + `{1,24}\.(\d{1,12})$`)
	reSGCN  = regexp.MustCompile(`^urn:epc:id:sgcn:(\d{6,12})\.(\d{0,6})\.(\d{1,12})$`)
	reGINC  = regexp.MustCompile(`^urn:epc:id:ginc:(\d{6,12})\.` + safeChar + `{1,24}$`)
	reGSIN  = regexp.MustCompile(`^urn:epc:id:gsin:(\d{6,12})\.(\d{4,10})$`)
	reITIP  = regexp.MustCompile(`^urn:epc:id:itip:(\d{6,12})\.(\d{1,7})\.(\d{2})\.(\d{2})\.` + safeChar + `{1,20}$`)
	reUPUI  = regexp.MustCompile(`^urn:epc:id:upui:(\d{6,12})\.(\d{1,7})\.` + safeChar + `{1,28}$`)
	rePGLN  = regexp.MustCompile(`^urn:epc:id:pgln:(\d{6,12})\.(\d{0,6})$`)
)

// buildGTIN13 reassembles a GTIN-13 body from a split company prefix and
// item reference the way dl_normaliser.py does: the item reference's
// first character is the GTIN indicator digit, so it moves in front of
// the company prefix.
func buildGTIN13(companyPrefix, itemRef string) string {
	if itemRef == "" {
		return "0" + companyPrefix
	}
	return itemRef[:1] + companyPrefix + itemRef[1:]
}

func normalizeEPCURI(uri string) string {
	switch {
	case reSGTIN.MatchString(uri):
		m := reSGTIN.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		serial := afterNthDot(uri, 2)
		return "https://id.gs1.org/01/" + raw + strconv.Itoa(CheckDigit(raw)) + "/21/" + percentEncode(serial)

	case reSSCC.MatchString(uri):
		m := reSSCC.FindStringSubmatch(uri)
		raw := m[2][:1] + m[1] + m[2][1:]
		return "https://id.gs1.org/00/" + raw + strconv.Itoa(CheckDigit(raw))

	case reSGLN.MatchString(uri):
		m := reSGLN.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		ext := afterNthDot(uri, 2)
		if ext == "0" {
			return "https://id.gs1.org/414/" + raw + strconv.Itoa(CheckDigit(raw))
		}
		return "https://id.gs1.org/414/" + raw + strconv.Itoa(CheckDigit(raw)) + "/254/" + percentEncode(ext)

	case reGRAI.MatchString(uri):
		m := reGRAI.FindStringSubmatch(uri)
		raw := "0" + m[1] + m[2]
		serial := afterNthDot(uri, 2)
		return "https://id.gs1.org/8003/" + raw + strconv.Itoa(CheckDigit(raw)) + percentEncode(serial)

	case reGIAI.MatchString(uri):
		m := reGIAI.FindStringSubmatch(uri)
		assetref := afterNthDot(uri, 1)
		return "https://id.gs1.org/8004/" + m[1] + percentEncode(assetref)

	case reGSRN.MatchString(uri):
		m := reGSRN.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/8018/" + raw + strconv.Itoa(CheckDigit(raw))

	case reGSRNP.MatchString(uri):
		m := reGSRNP.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/8017/" + raw + strconv.Itoa(CheckDigit(raw))

	case reGDTI.MatchString(uri):
		m := reGDTI.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		serial := afterNthDot(uri, 2)
		return "https://id.gs1.org/253/" + raw + strconv.Itoa(CheckDigit(raw)) + percentEncode(serial)

	case reCPI.MatchString(uri):
		m := reCPI.FindStringSubmatch(uri)
		sep := strings.LastIndex(uri, ".")
		firstDot := strings.Index(uri, ".")
		cpref := uri[firstDot+1 : sep]
		raw := m[1] + cpref
		serial := m[2]
		return "https://id.gs1.org/8010/" + percentEncode(raw) + "/8011/" + serial

	case reSGCN.MatchString(uri):
		m := reSGCN.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/255/" + raw + strconv.Itoa(CheckDigit(raw)) + m[3]

	case reGINC.MatchString(uri):
		m := reGINC.FindStringSubmatch(uri)
		consignmentref := afterNthDot(uri, 1)
		return "https://id.gs1.org/401/" + m[1] + percentEncode(consignmentref)

	case reGSIN.MatchString(uri):
		m := reGSIN.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/402/" + raw + strconv.Itoa(CheckDigit(raw))

	case reITIP.MatchString(uri):
		m := reITIP.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		piece, total := m[3], m[4]
		serial := afterNthDot(uri, 4)
		return "https://id.gs1.org/8006/" + raw + strconv.Itoa(CheckDigit(raw)) + piece + total + "/21/" + percentEncode(serial)

	case reUPUI.MatchString(uri):
		m := reUPUI.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		serial := afterNthDot(uri, 2)
		return "https://id.gs1.org/01/" + raw + strconv.Itoa(CheckDigit(raw)) + "/235/" + percentEncode(serial)

	case rePGLN.MatchString(uri):
		m := rePGLN.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/417/" + raw + strconv.Itoa(CheckDigit(raw))
	}
	return ""
}

// afterNthDot returns the substring following the n-th '.' (1-indexed) in s.
func afterNthDot(s string, n int) string {
	idx := -1
	for i := 0; i < n; i++ {
		next := strings.Index(s[idx+1:], ".")
		if next == -1 {
			return ""
		}
		idx = idx + 1 + next
	}
	return s[idx+1:]
}
