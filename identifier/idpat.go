package identifier

import (
	"regexp"
	"strconv"
)

// EPC ID Pattern URIs (urn:epc:idpat:...) name an entire class of EPCs;
// a trailing "*" replaces the serial/extension. Only the company prefix
// and item/asset reference (plus, for ITIP, the piece and total digits)
// survive normalization -- there is no serial to carry forward.
var (
	reSGTINPat = regexp.MustCompile(`^urn:epc:idpat:sgtin:(\d{6,12})\.(\d{1,7})\.\*$`)
	reGRAIPat  = regexp.MustCompile(`^urn:epc:idpat:grai:(\d{6,12})\.(\d{0,6})\.\*$`)
	reGDTIPat  = regexp.MustCompile(`^urn:epc:idpat:gdti:(\d{6,12})\.(\d{0,6})\.\*$`)
	reSGCNPat  = regexp.MustCompile(`^urn:epc:idpat:sgcn:(\d{6,12})\.(\d{0,6})\.\*$`)
	reCPIPat   = regexp.MustCompile(`^urn:epc:idpat:cpi:(\d{6,12})\.` + safeChar + `{1,24}\.\*$`)
	reITIPPat  = regexp.MustCompile(`^urn:epc:idpat:itip:(\d{6,12})\.(\d{1,7})\.(\d{2})\.(\d{2})\.\*$`)
	reUPUIPat  = regexp.MustCompile(`^urn:epc:idpat:upui:(\d{6,12})\.(\d{1,7})\.\*$`)
)

func normalizeEPCPatternURI(uri string) string {
	switch {
	case reSGTINPat.MatchString(uri):
		m := reSGTINPat.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		return "https://id.gs1.org/01/" + raw + strconv.Itoa(CheckDigit(raw))

	case reGRAIPat.MatchString(uri):
		m := reGRAIPat.FindStringSubmatch(uri)
		raw := "0" + m[1] + m[2]
		return "https://id.gs1.org/8003/" + raw + strconv.Itoa(CheckDigit(raw))

	case reGDTIPat.MatchString(uri):
		m := reGDTIPat.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/253/" + raw + strconv.Itoa(CheckDigit(raw))

	case reSGCNPat.MatchString(uri):
		m := reSGCNPat.FindStringSubmatch(uri)
		raw := m[1] + m[2]
		return "https://id.gs1.org/255/" + raw + strconv.Itoa(CheckDigit(raw))

	case reCPIPat.MatchString(uri):
		m := reCPIPat.FindStringSubmatch(uri)
		firstDot := indexOf(uri, '.')
		lastDot := lastIndexOf(uri, '.')
		cpref := uri[firstDot+1 : lastDot]
		raw := m[1] + cpref
		return "https://id.gs1.org/8010/" + percentEncode(raw)

	case reITIPPat.MatchString(uri):
		m := reITIPPat.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		return "https://id.gs1.org/8006/" + raw + strconv.Itoa(CheckDigit(raw)) + m[3] + m[4]

	case reUPUIPat.MatchString(uri):
		m := reUPUIPat.FindStringSubmatch(uri)
		raw := buildGTIN13(m[1], m[2])
		return "https://id.gs1.org/01/" + raw + strconv.Itoa(CheckDigit(raw))
	}
	return ""
}

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func lastIndexOf(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}
