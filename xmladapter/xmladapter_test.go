package xmladapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<epcis:EPCISDocument xmlns:epcis="urn:epcglobal:epcis:xsd:1" xmlns:ext="http://example.com/ext">
  <EPCISBody>
    <EventList>
      <ObjectEvent>
        <eventTime>2020-03-04T10:00:30Z</eventTime>
        <eventTimeZoneOffset>+00:00</eventTimeZoneOffset>
        <extension><foo>ignored-wrapper</foo></extension>
        <epcList>
          <epc>urn:epc:id:sgtin:0614141.107346.2017</epc>
        </epcList>
        <bizTransactionList>
          <bizTransaction type="po">urn:epc:id:gdti:0614141.00001.1234</bizTransaction>
        </bizTransactionList>
        <ext:customField>42</ext:customField>
      </ObjectEvent>
    </EventList>
  </EPCISBody>
</epcis:EPCISDocument>`

func TestParseEventsBasic(t *testing.T) {
	events, err := ParseEvents([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "ObjectEvent", ev.Type)

	var foundEPCList, foundBizTxn, foundExt, foundFoo bool
	for _, c := range ev.Node.Children {
		switch c.Name {
		case "epcList":
			foundEPCList = true
		case "bizTransactionList":
			foundBizTxn = true
			if assert.Len(t, c.Children, 2) {
				assert.Equal(t, "type", c.Children[0].Name)
				assert.Equal(t, "bizTransaction", c.Children[1].Name)
			}
		case "foo":
			foundFoo = true
		}
		if len(c.Name) > 0 && c.Name[0] == '{' {
			foundExt = true
		}
	}
	assert.True(t, foundEPCList, "expected epcList child")
	assert.True(t, foundBizTxn, "expected bizTransactionList child")
	assert.True(t, foundExt, "expected qualified extension name for ext:customField")
	assert.True(t, foundFoo, "extension wrapper is presentation-only: its content survives as a plain sibling")
}

func TestRemoveExtensionWrappers(t *testing.T) {
	in := "<a><extension><b>1</b></extension></a>"
	want := "<a><b>1</b></a>"
	assert.Equal(t, want, removeExtensionWrappers(in))
}

func TestExpandShortPrefix(t *testing.T) {
	assert.Equal(t, "https://ref.gs1.org/cbv/shipping", expandShortPrefix("cbv:shipping"))
	assert.Equal(t, "https://gs1.org/voc/widget", expandShortPrefix("gs1:widget"))
	assert.Equal(t, "unchanged", expandShortPrefix("unchanged"))
}
