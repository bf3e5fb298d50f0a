// Command epcishash canonicalizes one or more EPCIS documents and prints
// their event hashes, per spec.md section 6's CLI surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/trackvision/epcis-hashgen/canonicalizer"
	"github.com/trackvision/epcis-hashgen/hashemit"
	"github.com/trackvision/epcis-hashgen/pipelines"
)

func main() {
	alg := flag.String("a", string(hashemit.SHA256), "hash algorithm: sha-256, sha3-256, sha-384, sha-512")
	batch := flag.Bool("b", false, "batch mode: write sibling <name>.hashes / <name>.prehashes files")
	includePreHash := flag.Bool("p", false, "include pre-hash strings")
	joinDelim := flag.String("j", "", "join delimiter for debugging")
	forceFormat := flag.String("e", "", "force format: XML, JSON, or empty to guess by file suffix")
	concurrency := flag.Int("c", 4, "batch mode: number of files processed concurrently")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: epcishash [-a alg] [-b] [-p] [-j delim] [-e XML|JSON] file...")
		os.Exit(2)
	}

	opts := canonicalizer.DefaultOptions()
	opts.Algorithm = hashemit.Algorithm(*alg)
	opts.JoinDelim = *joinDelim
	opts.PreHashes = *includePreHash

	if *batch {
		if err := runBatch(files, opts, *forceFormat, *concurrency); err != nil {
			fmt.Fprintln(os.Stderr, "epcishash:", err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	for _, path := range files {
		results, err := canonicalizeFile(ctx, path, opts, *forceFormat)
		if err != nil {
			fmt.Fprintln(os.Stderr, "epcishash:", err)
			os.Exit(1)
		}
		for _, r := range results {
			fmt.Println(r.Hash)
			if opts.PreHashes {
				fmt.Println(r.PreHash)
			}
		}
	}
}

func canonicalizeFile(ctx context.Context, path string, opts canonicalizer.Options, forceFormat string) ([]canonicalizer.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToUpper(resolveFormat(path, forceFormat)) {
	case "XML":
		return canonicalizer.XMLDocument(ctx, raw, opts)
	case "JSON":
		return canonicalizer.JSONDocument(ctx, raw, opts)
	default:
		return canonicalizer.Document(ctx, raw, opts)
	}
}

// resolveFormat applies -e when set, otherwise guesses by file suffix
// (spec.md section 6: "force format (default: guess by file suffix)").
func resolveFormat(path, forceFormat string) string {
	if forceFormat != "" {
		return forceFormat
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return "XML"
	case ".json", ".jsonld":
		return "JSON"
	default:
		return ""
	}
}

// runBatch fans files out across a bounded worker pool built on
// pipelines.Flow, writing each file's results to sibling .hashes /
// .prehashes files rather than stdout.
func runBatch(files []string, opts canonicalizer.Options, forceFormat string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	errs := make([]error, len(files))

	for i, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = writeBatchFile(path, opts, forceFormat)
		}(i, path)
	}
	wg.Wait()

	var failed []string
	for i, err := range errs {
		if err != nil {
			fmt.Fprintln(os.Stderr, "epcishash:", err)
			failed = append(failed, files[i])
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return nil
}

func writeBatchFile(path string, opts canonicalizer.Options, forceFormat string) error {
	flow := pipelines.NewFlow("epcishash-batch-" + path)

	var results []canonicalizer.Result
	flow.AddTask("canonicalize", func() error {
		var err error
		results, err = canonicalizeFile(context.Background(), path, opts, forceFormat)
		return err
	})

	var hashLines, preHashLines []string
	flow.AddTask("format", func() error {
		for _, r := range results {
			hashLines = append(hashLines, r.Hash)
			if opts.PreHashes {
				preHashLines = append(preHashLines, r.PreHash)
			}
		}
		return nil
	}, "canonicalize")

	flow.AddTask("write", func() error {
		if err := os.WriteFile(path+".hashes", []byte(strings.Join(hashLines, "\n")+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s.hashes: %w", path, err)
		}
		if opts.PreHashes {
			if err := os.WriteFile(path+".prehashes", []byte(strings.Join(preHashLines, "\n")+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s.prehashes: %w", path, err)
			}
		}
		return nil
	}, "format")

	return flow.Run(context.Background())
}
