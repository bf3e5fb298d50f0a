package canonicalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<epcis:EPCISDocument xmlns:epcis="urn:epcglobal:epcis:xsd:1">
  <EPCISBody>
    <EventList>
      <ObjectEvent>
        <eventTime>2020-03-04T10:00:30Z</eventTime>
        <eventTimeZoneOffset>+00:00</eventTimeZoneOffset>
        <epcList>
          <epc>urn:epc:id:sgtin:0614141.107346.2017</epc>
          <epc>urn:epc:id:sgtin:0614141.107346.2020</epc>
        </epcList>
        <action>OBSERVE</action>
        <bizStep>urn:epcglobal:cbv:bizstep:shipping</bizStep>
      </ObjectEvent>
    </EventList>
  </EPCISBody>
</epcis:EPCISDocument>`

const jsonDoc = `{
  "epcisBody": {
    "eventList": [
      {
        "type": "ObjectEvent",
        "eventTime": "2020-03-04T10:00:30Z",
        "eventTimeZoneOffset": "+00:00",
        "epcList": [
          "urn:epc:id:sgtin:0614141.107346.2020",
          "urn:epc:id:sgtin:0614141.107346.2017"
        ],
        "action": "OBSERVE",
        "bizStep": "urn:epcglobal:cbv:bizstep:shipping"
      }
    ]
  }
}`

func TestXMLAndJSONProduceEqualHashes(t *testing.T) {
	opts := DefaultOptions()
	opts.Loader = nil

	ctx := context.Background()
	xmlResults, err := Document(ctx, []byte(xmlDoc), opts)
	require.NoError(t, err)
	jsonResults, err := Document(ctx, []byte(jsonDoc), opts)
	require.NoError(t, err)

	require.Len(t, xmlResults, 1)
	require.Len(t, jsonResults, 1)
	assert.Equal(t, xmlResults[0].Hash, jsonResults[0].Hash,
		"XML and JSON representations hashed differently:\nXML  prehash: %q\nJSON prehash: %q", xmlResults[0].PreHash, jsonResults[0].PreHash)
}

func TestFormatSniffing(t *testing.T) {
	assert.True(t, looksLikeXML([]byte("  \n<foo/>")))
	assert.False(t, looksLikeXML([]byte(`{"a":1}`)))
}
