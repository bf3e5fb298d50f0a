// Package schema holds the declarative property-order schema (spec
// component F) that drives the canonical serializer. The schema itself is
// data, not code -- embedded as YAML and decoded once at package init,
// the way spec section 9 recommends organizing the identifier dispatch
// table: "more maintainable... makes exhaustiveness auditable."
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed epcis_schema.yaml
var schemaYAML []byte

// Entry is one (element-name, sub-schema) pair from PROP_ORDER. Paired
// marks bizTransactionList/sourceList/destinationList: their list items
// are (type, value) pairs that the serializer must emit positionally,
// never sorted (spec 4.E.1.d).
type Entry struct {
	Name     string  `yaml:"name"`
	Children []Entry `yaml:"children,omitempty"`
	Paired   bool    `yaml:"paired,omitempty"`
}

// EventOrder is the decoded PROP_ORDER: the ordered list of elements an
// EPCIS event may contain whose position in the pre-hash string matters.
var EventOrder []Entry

func init() {
	if err := yaml.Unmarshal(schemaYAML, &EventOrder); err != nil {
		panic(fmt.Sprintf("schema: decoding embedded epcis_schema.yaml: %v", err))
	}
}

// pairedListNames is the fixed set of list names the serializer must
// never lexicographically sort, independent of schema, per the
// invariant spec 4.E.1.d and 8.3 describe.
var pairedListNames = map[string]bool{
	"bizTransactionList": true,
	"sourceList":         true,
	"destinationList":    true,
}

// IsPairedList reports whether name is one of the three paired-list
// element names.
func IsPairedList(name string) bool {
	return pairedListNames[name]
}
