// Package ldcontext implements the context loader contract (spec 4.H):
// resolving JSON-LD @context URLs, serving a bundled offline set first
// and falling back to network retrieval. Grounded on the reference
// implementation's file_document_loader.py, which resolves well-known
// EPCIS context URLs from package-bundled files, keyed by content hash,
// before delegating to a requests-based document loader.
package ldcontext

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/trackvision/epcis-hashgen/canonerr"
)

// Document is a resolved JSON-LD context document.
type Document struct {
	ContentType string
	DocumentURL string
	// Context is the decoded "@context" object's prefix -> IRI entries.
	Context map[string]interface{}
}

// Loader resolves a JSON-LD @context URL to its decoded document.
type Loader interface {
	Load(ctx context.Context, url string) (Document, error)
}

//go:embed contexts/epcis-context.jsonld
var bundledEPCISContext []byte

// knownContexts mirrors file_document_loader.py's context_file_hashes
// table: the well-known EPCIS context URLs GS1 and EECC publish, each
// keyed to bundled content and its SHA-256 hash. The pack this module
// was built from did not include the published .jsonld files, so all
// five resolve to the same minimal practical context (see DESIGN.md);
// a deployment with the real files can swap the embed in.
var knownContexts = map[string]string{
	"https://gs1.github.io/EPCIS/epcis-context.jsonld":              "0aa0cba25fa0fbb4369d6ecc1b918b37f43e49b7d1a7000846c110f2a6695763",
	"https://ref.gs1.org/standards/epcis/2.0.0/epcis-context.jsonld": "0aa0cba25fa0fbb4369d6ecc1b918b37f43e49b7d1a7000846c110f2a6695763",
	"https://ref.gs1.org/standards/epcis/epcis-context.jsonld":       "0aa0cba25fa0fbb4369d6ecc1b918b37f43e49b7d1a7000846c110f2a6695763",
	"https://ref.gs1.org/standards/epcis/2.1.0/epcis-context.jsonld": "0aa0cba25fa0fbb4369d6ecc1b918b37f43e49b7d1a7000846c110f2a6695763",
	"https://eecc.de/global_2025-09-26.jsonld":                       "0aa0cba25fa0fbb4369d6ecc1b918b37f43e49b7d1a7000846c110f2a6695763",
}

// FileLoader serves the bundled well-known contexts offline, falling
// back to an HTTP client when a URL isn't bundled and a client is
// configured.
type FileLoader struct {
	// HTTPClient performs network fallback retrieval. Nil disables it,
	// so only bundled URLs resolve.
	HTTPClient *http.Client

	// CacheDir, when set, persists each network-fetched context
	// alongside the well-known bundled set so a later run can inspect
	// what was retrieved. Each fetch is written under a uuid-named
	// file rather than one derived from the URL, since context URLs
	// contain path separators that don't make safe filenames.
	CacheDir string
}

// NewFileLoader returns a loader with a short-timeout HTTP fallback
// client. Pass &FileLoader{} directly instead for offline-only use.
func NewFileLoader() *FileLoader {
	return &FileLoader{HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

func (f *FileLoader) Load(ctx context.Context, url string) (Document, error) {
	if hash, ok := knownContexts[url]; ok {
		sum := sha256.Sum256(bundledEPCISContext)
		if hex.EncodeToString(sum[:]) != hash {
			return Document{}, canonerr.New(canonerr.ContextUnavailable,
				fmt.Errorf("ldcontext: bundled content for %s failed integrity check", url))
		}
		return decode(url, bundledEPCISContext)
	}

	if f.HTTPClient == nil {
		return Document{}, canonerr.New(canonerr.ContextUnavailable,
			fmt.Errorf("ldcontext: %s is not bundled and network retrieval is disabled", url))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, canonerr.New(canonerr.ContextUnavailable, err)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return Document{}, canonerr.New(canonerr.ContextUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Document{}, canonerr.New(canonerr.ContextUnavailable,
			fmt.Errorf("ldcontext: fetching %s: status %s", url, resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, canonerr.New(canonerr.ContextUnavailable, err)
	}
	f.cacheToDisk(body)
	return decode(url, body)
}

// cacheToDisk best-effort writes a fetched context to CacheDir. Failures
// are not fatal: the loader already has the document in hand.
func (f *FileLoader) cacheToDisk(body []byte) {
	if f.CacheDir == "" {
		return
	}
	name := filepath.Join(f.CacheDir, uuid.New().String()+".jsonld")
	_ = os.WriteFile(name, body, 0o644)
}

func decode(url string, raw []byte) (Document, error) {
	var wrapper struct {
		Context map[string]interface{} `json:"@context"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return Document{}, canonerr.New(canonerr.ContextUnavailable, err)
	}
	return Document{
		ContentType: "application/ld+json",
		DocumentURL: url,
		Context:     wrapper.Context,
	}, nil
}
