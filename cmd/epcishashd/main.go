// Command epcishashd serves the HTTP surface spec.md section 6 describes:
// POST /hash accepts an EPCIS document and returns a comma-separated list
// of ni://… event hash URIs. Adapted from the teacher's flat
// net/http.ServeMux + authMiddleware pattern in its root main.go.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/trackvision/epcis-hashgen/canonicalizer"
	"github.com/trackvision/epcis-hashgen/configs"
	"github.com/trackvision/epcis-hashgen/hashemit"
	"github.com/trackvision/epcis-hashgen/ldcontext"
	"github.com/trackvision/epcis-hashgen/logging"
	"go.uber.org/zap"
)

// authMiddleware checks for a valid API key in the Authorization or
// X-API-Key header, matching the teacher's main.go convention.
func authMiddleware(apiKey string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if apiKey == "" {
			next(w, r)
			return
		}
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") && strings.TrimPrefix(authHeader, "Bearer ") == apiKey {
			next(w, r)
			return
		}
		if r.Header.Get("X-API-Key") == apiKey {
			next(w, r)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
}

func main() {
	cfg, err := configs.Load()
	if err != nil {
		logging.Fatal("failed to load configuration", zap.Error(err))
	}

	closeLog, err := logging.Init(logging.Config{
		Development:  cfg.LogLevel == "debug",
		GCPProjectID: cfg.GCPProjectID,
		LogName:      cfg.CloudRunService,
	})
	if err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer closeLog()

	opts := canonicalizer.DefaultOptions()
	opts.Algorithm = hashemit.Algorithm(cfg.HashAlgorithm)
	opts.JoinDelim = cfg.JoinDelimiter
	opts.PreHashes = cfg.IncludePreHashes
	switch {
	case !cfg.AllowRemoteLD:
		opts.Loader = &ldcontext.FileLoader{}
	case cfg.ContextCacheDir != "":
		opts.Loader = &ldcontext.FileLoader{HTTPClient: http.DefaultClient, CacheDir: cfg.ContextCacheDir}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/hash", authMiddleware(cfg.APIKey, makeHashHandler(opts)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logging.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Error("server shutdown error", zap.Error(err))
		}
		close(done)
	}()

	logging.Info("starting epcis hash canonicalizer", zap.String("port", cfg.Port), zap.Bool("auth_enabled", cfg.APIKey != ""))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("server failed", zap.Error(err))
	}
	<-done
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"healthy"}`)
}

// makeHashHandler serves POST /hash: Content-Type application/xml or
// text/xml selects the XML adapter, application/(ld+)json selects the
// JSON-LD adapter, any other Content-Type is a 404 per spec.md section 6.
func makeHashHandler(opts canonicalizer.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)

		contentType := strings.ToLower(r.Header.Get("Content-Type"))
		var parse func(ctx context.Context, raw []byte, opts canonicalizer.Options) ([]canonicalizer.Result, error)
		switch {
		case strings.Contains(contentType, "application/xml"), strings.Contains(contentType, "text/xml"):
			parse = canonicalizer.XMLDocument
		case strings.Contains(contentType, "application/json"), strings.Contains(contentType, "application/ld+json"):
			parse = canonicalizer.JSONDocument
		default:
			http.NotFound(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		results, err := parse(r.Context(), body, opts)
		if err != nil {
			logging.Error("canonicalization failed", zap.String("request_id", requestID), zap.Error(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		hashes := make([]string, 0, len(results))
		for _, res := range results {
			hashes = append(hashes, res.Hash)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, strings.Join(hashes, ","))
	}
}
