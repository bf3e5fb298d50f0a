package identifier

import (
	"regexp"
	"strconv"
)

// reLGTIN matches an EPC Class URI for a lot-level GTIN.
var reLGTIN = regexp.MustCompile(`^urn:epc:class:lgtin:(\d{6,12})\.(\d{1,7})\.` + safeChar + `{1,20}$`)

func normalizeEPCClassURI(uri string) string {
	if !reLGTIN.MatchString(uri) {
		return ""
	}
	m := reLGTIN.FindStringSubmatch(uri)
	raw := buildGTIN13(m[1], m[2])
	lot := afterNthDot(uri, 2)
	return "https://id.gs1.org/01/" + raw + strconv.Itoa(CheckDigit(raw)) + "/10/" + percentEncode(lot)
}
