package value

import (
	"time"
)

// timestampLayouts are tried in order; RFC3339Nano accepts any fractional
// precision (including none), covering every form EPCIS timestamps use.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// CanonicalizeTimestamp rewrites an ISO 8601 timestamp to UTC with exactly
// millisecond precision (spec 4.B.4). Ported from
// hash_generator.fix_time_stamp_format, with "later revision" CBV 2.1
// millisecond rounding mandated unconditionally per spec section 9.
//
// On parse failure, ok is false and text is returned unchanged so the
// caller can pass it through with a canonerr.UnparseableTimestamp warning.
func CanonicalizeTimestamp(text string) (string, bool) {
	var (
		t   time.Time
		err error
	)
	for _, layout := range timestampLayouts {
		t, err = time.Parse(layout, text)
		if err == nil {
			break
		}
	}
	if err != nil {
		return text, false
	}

	utc := t.UTC().Round(time.Millisecond)
	return utc.Format("2006-01-02T15:04:05.000") + "Z", true
}
