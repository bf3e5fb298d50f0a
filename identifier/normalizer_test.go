package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		expected int
	}{
		{"GTIN-14 base", "0036846205016", 3},
		{"GLN base", "030001111111", 6},
		{"SSCC base", "03000112345678901", 8},
		{"all zeros", "0000000000000", 0},
		{"known GTIN-13", "590123412345", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckDigit(tt.base))
		})
	}
}

func TestNormalizeSGTIN(t *testing.T) {
	// S4: urn:epc:id:sgtin:4012345.011111.987 -> .../01/04012345111118/21/987
	assert.Equal(t, "https://id.gs1.org/01/04012345111118/21/987", Normalize("urn:epc:id:sgtin:4012345.011111.987"))
}

func TestNormalizeSSCC(t *testing.T) {
	got := Normalize("urn:epc:id:sscc:4012345.0000000333")
	assert.True(t, len(got) > 0 && got[:len("https://id.gs1.org/00/")] == "https://id.gs1.org/00/", "Normalize(sscc) = %q, want a /00/ digital link", got)
}

func TestNormalizeDigitalLinkCanonicalization(t *testing.T) {
	// S5: stray query string and non-canonical host collapse to canonical form.
	got := Normalize("https://example.org/01/9780345418913/21/765tz?11=221109")
	assert.Equal(t, "https://id.gs1.org/01/09780345418913/21/765tz", got)
}

func TestNormalizeLotVsSerialPriority(t *testing.T) {
	// S6: lot dropped when serial also present.
	got := Normalize("https://example.org/01/9780345418913/10/LOT/21/SER")
	assert.Equal(t, "https://id.gs1.org/01/09780345418913/21/SER", got)
}

func TestNormalizeUnrecognized(t *testing.T) {
	for _, in := range []string{"", "hello", "urn:epcglobal:cbv:bizstep:shipping", "3.14"} {
		assert.Equal(t, "", Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalizeShortNameDigitalLink(t *testing.T) {
	got := Normalize("https://id.gs1.org/gtin/09780345418913")
	assert.Equal(t, "https://id.gs1.org/01/09780345418913", got)
}
