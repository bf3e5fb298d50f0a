package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeNumeric(t *testing.T) {
	tests := map[string]string{
		"3":    "3",
		"+3":   "3",
		"003":  "3",
		"3.0":  "3",
		"3.5":  "3.5",
		"abc":  "abc",
		"":     "",
		"-0.0": "0",
	}
	for in, want := range tests {
		assert.Equal(t, want, Canonicalize(in), "Canonicalize(%q)", in)
	}
}

func TestRewriteVocabulary(t *testing.T) {
	assert.Equal(t, "https://ref.gs1.org/cbv/BizStep-departing", Canonicalize("urn:epcglobal:cbv:bizstep:departing"))
}

func TestCanonicalizeTimestampEquivalence(t *testing.T) {
	// Property 6: these three must canonicalize identically.
	inputs := []string{
		"2020-03-04T11:00:30.000+01:00",
		"2020-03-04T10:00:30.000Z",
		"2020-03-04T10:00:30Z",
	}
	const want = "2020-03-04T10:00:30.000Z"
	for _, in := range inputs {
		got, ok := CanonicalizeTimestamp(in)
		require.True(t, ok, "CanonicalizeTimestamp(%q) failed to parse", in)
		assert.Equal(t, want, got, "CanonicalizeTimestamp(%q)", in)
	}
}

func TestIsTimestampElement(t *testing.T) {
	cases := map[string]bool{
		"eventTime":           true,
		"startTime":           true,
		"eventTimeZoneOffset": false,
		"bizStep":             false,
	}
	for name, want := range cases {
		assert.Equal(t, want, IsTimestampElement(name), "IsTimestampElement(%q)", name)
	}
}
