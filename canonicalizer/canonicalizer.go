// Package canonicalizer wires the input adapters, structural reconciler,
// canonical serializer, and hash emitter into the single operation spec
// section 2 describes: parsed document bytes in, one ni:// hash URI per
// event out.
package canonicalizer

import (
	"bytes"
	"context"

	"github.com/trackvision/epcis-hashgen/canontree"
	"github.com/trackvision/epcis-hashgen/hashemit"
	"github.com/trackvision/epcis-hashgen/jsonadapter"
	"github.com/trackvision/epcis-hashgen/ldcontext"
	"github.com/trackvision/epcis-hashgen/serialize"
	"github.com/trackvision/epcis-hashgen/xmladapter"
)

// Result is one event's canonicalization output.
type Result struct {
	EventType string
	PreHash   string
	Hash      string
}

// Options configures a canonicalization run.
type Options struct {
	Algorithm hashemit.Algorithm
	JoinDelim string
	Loader    ldcontext.Loader
	PreHashes bool // when false, PreHash is left empty in results to save allocation
}

// DefaultOptions matches the reference implementation's defaults: SHA-256
// digest, empty join delimiter.
func DefaultOptions() Options {
	return Options{
		Algorithm: hashemit.SHA256,
		JoinDelim: "",
		Loader:    ldcontext.NewFileLoader(),
		PreHashes: true,
	}
}

// Document canonicalizes every event in an EPCIS document. Format is
// detected by sniffing the first non-whitespace byte: '<' selects the
// XML adapter, anything else the JSON-LD adapter.
func Document(ctx context.Context, raw []byte, opts Options) ([]Result, error) {
	if looksLikeXML(raw) {
		return XMLDocument(ctx, raw, opts)
	}
	return JSONDocument(ctx, raw, opts)
}

// XMLDocument forces XML-adapter parsing regardless of content sniffing.
func XMLDocument(ctx context.Context, raw []byte, opts Options) ([]Result, error) {
	events, err := xmladapter.ParseEvents(raw)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(events))
	for _, ev := range events {
		r, err := canonicalizeEvent(ev.Type, ev.Node.Children, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// JSONDocument forces JSON-LD-adapter parsing regardless of content
// sniffing.
func JSONDocument(ctx context.Context, raw []byte, opts Options) ([]Result, error) {
	events, err := jsonadapter.ParseEvents(ctx, raw, opts.Loader)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(events))
	for _, ev := range events {
		r, err := canonicalizeEvent(ev.Type, ev.Node.Children, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func canonicalizeEvent(eventType string, children []*canontree.Node, opts Options) (Result, error) {
	preHash := serialize.Event(eventType, children, opts.JoinDelim)
	hash, err := hashemit.Hash(preHash, opts.Algorithm)
	if err != nil {
		return Result{}, err
	}
	r := Result{EventType: eventType, Hash: hash}
	if opts.PreHashes {
		r.PreHash = preHash
	}
	return r, nil
}

func looksLikeXML(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
