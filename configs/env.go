// Package configs loads the canonicalizer service's configuration from
// the environment, the way the teacher's configs package did, but built
// on github.com/caarlos0/env struct tags instead of hand-rolled
// getEnv/getEnvInt/getEnvBool helpers, with github.com/joho/godotenv
// populating the environment from a .env file first when one is
// present (local development only; Cloud Run injects real env vars).
package configs

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds the canonicalizer daemon's configuration.
type Config struct {
	// Server
	Port   string `env:"PORT" envDefault:"8080"`
	APIKey string `env:"API_KEY"` // empty disables request authentication

	// Canonicalization defaults (spec 4.G, 4.E.1.e)
	HashAlgorithm    string `env:"HASH_ALGORITHM" envDefault:"sha-256"`
	JoinDelimiter    string `env:"JOIN_DELIMITER" envDefault:""`
	IncludePreHashes bool   `env:"INCLUDE_PREHASHES" envDefault:"false"`

	// CBVVersion is validated but does not change serialization: this
	// specification always rounds timestamps to milliseconds regardless
	// of the switch (spec.md §9 "Open question -- CBV version switch").
	// The field is retained since later source revisions expose it.
	CBVVersion string `env:"CBV_VERSION" envDefault:"2.1"`

	// LogLevel selects logging.Init's zap config: "debug" builds a
	// development logger, anything else a production one.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// JSON-LD context loading (spec 4.H)
	ContextCacheDir string `env:"CONTEXT_CACHE_DIR" envDefault:""`
	AllowRemoteLD   bool   `env:"ALLOW_REMOTE_CONTEXT_FETCH" envDefault:"true"`

	// Batch CLI (spec 13)
	BatchConcurrency int `env:"BATCH_CONCURRENCY" envDefault:"4"`

	// GCP Cloud Logging sink (spec 10.1)
	GCPProjectID    string `env:"GCP_PROJECT_ID"`
	CloudRunService string `env:"CLOUD_RUN_SERVICE" envDefault:"epcis-hashgen"`
}

// Load reads .env (if present) into the process environment, then
// decodes Config from it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("configs: loading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("configs: parsing environment: %w", err)
	}

	if !validAlgorithm(cfg.HashAlgorithm) {
		return nil, fmt.Errorf("configs: HASH_ALGORITHM %q is not one of sha-256, sha3-256, sha-384, sha-512", cfg.HashAlgorithm)
	}
	if !validCBVVersion(cfg.CBVVersion) {
		return nil, fmt.Errorf("configs: CBV_VERSION %q is not one of 2.0, 2.1", cfg.CBVVersion)
	}

	return cfg, nil
}

func validAlgorithm(alg string) bool {
	switch alg {
	case "sha-256", "sha3-256", "sha-384", "sha-512":
		return true
	default:
		return false
	}
}

func validCBVVersion(v string) bool {
	switch v {
	case "2.0", "2.1":
		return true
	default:
		return false
	}
}
