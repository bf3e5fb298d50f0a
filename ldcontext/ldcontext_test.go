package ldcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoaderServesBundledContext(t *testing.T) {
	l := &FileLoader{}
	doc, err := l.Load(context.Background(), "https://ref.gs1.org/standards/epcis/epcis-context.jsonld")
	require.NoError(t, err)
	assert.Equal(t, "https://ref.gs1.org/cbv/", doc.Context["cbv"])
	assert.Equal(t, "https://ref.gs1.org/standards/epcis/epcis-context.jsonld", doc.DocumentURL)
}

func TestFileLoaderFailsClosedWithoutNetwork(t *testing.T) {
	l := &FileLoader{}
	_, err := l.Load(context.Background(), "https://unknown.example.com/context.jsonld")
	assert.Error(t, err)
}
