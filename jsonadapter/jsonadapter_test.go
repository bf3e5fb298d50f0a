package jsonadapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "@context": [{"ext": "https://example.com/ext#"}],
  "epcisBody": {
    "eventList": [
      {
        "type": "ObjectEvent",
        "eventTime": "2020-03-04T10:00:30Z",
        "eventTimeZoneOffset": "+00:00",
        "epcList": ["urn:epc:id:sgtin:0614141.107346.2017"],
        "bizStep": "shipping",
        "readPoint": "urn:epc:id:sgln:0614141.00001.0",
        "bizTransactionList": [
          {"type": "po", "bizTransaction": "urn:epc:id:gdti:0614141.00001.1234"}
        ],
        "ext:customField": 42
      }
    ]
  }
}`

func TestParseEventsBasic(t *testing.T) {
	events, err := ParseEvents(context.Background(), []byte(sampleDoc), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "ObjectEvent", ev.Type)

	var sawEPC, sawBizStep, sawReadPoint, sawPair, sawExt bool
	for _, c := range ev.Node.Children {
		switch c.Name {
		case "epcList":
			sawEPC = true
			if assert.Len(t, c.Children, 1) {
				assert.Equal(t, "epc", c.Children[0].Name)
			}
		case "bizStep":
			sawBizStep = true
			assert.Equal(t, "https://ref.gs1.org/cbv/BizStep-shipping", c.Value)
		case "readPoint":
			sawReadPoint = true
			if assert.Len(t, c.Children, 1) {
				assert.Equal(t, "id", c.Children[0].Name)
			}
		case "bizTransactionList":
			sawPair = true
			if assert.Len(t, c.Children, 2) {
				assert.Equal(t, "type", c.Children[0].Name)
				assert.Equal(t, "bizTransaction", c.Children[1].Name)
			}
		}
		if len(c.Name) > 0 && c.Name[0] == '{' {
			sawExt = true
		}
	}
	assert.True(t, sawEPC, "epcList")
	assert.True(t, sawBizStep, "bizStep")
	assert.True(t, sawReadPoint, "readPoint")
	assert.True(t, sawPair, "bizTransactionList")
	assert.True(t, sawExt, "extension")
}
