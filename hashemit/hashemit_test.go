package hashemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackvision/epcis-hashgen/canonerr"
)

func TestHashFormat(t *testing.T) {
	got, err := Hash("eventType=ObjectEvent", SHA256)
	require.NoError(t, err)
	assert.True(t, len(got) > len("ni:///sha-256;") && got[:len("ni:///sha-256;")] == "ni:///sha-256;")
	assert.Contains(t, got, "?ver=CBV2.0")
}

func TestHashDeterministic(t *testing.T) {
	a, err := Hash("same input", SHA3256)
	require.NoError(t, err)
	b, err := Hash("same input", SHA3256)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashUnknownAlgorithm(t *testing.T) {
	_, err := Hash("x", Algorithm("md5"))
	assert.ErrorIs(t, err, canonerr.ErrUnknownHashAlgorithm)
}

func TestHashAllAlgorithms(t *testing.T) {
	for _, alg := range []Algorithm{SHA256, SHA3256, SHA384, SHA512} {
		_, err := Hash("x", alg)
		assert.NoError(t, err, "algorithm %v", alg)
	}
}
