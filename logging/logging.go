// Package logging provides the package-level structured logger every
// other package calls into (logging.Info, logging.Error, ...), the same
// calling convention the teacher's private tv-shared-go/logger package
// used over go.uber.org/zap. Init additionally wires an optional
// cloud.google.com/go/logging sink so a Cloud Run deployment's logs
// reach GCP's structured log viewer without a sidecar.
package logging

import (
	"context"
	"fmt"
	"os"

	gcplogging "cloud.google.com/go/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

func init() {
	log, _ = zap.NewProduction()
}

// Config controls Init's logger construction.
type Config struct {
	Development bool
	// GCPProjectID, when non-empty, adds a Cloud Logging sink under
	// LogName. Entries are sent best-effort; failures to dial Cloud
	// Logging are logged locally and do not prevent startup.
	GCPProjectID string
	LogName      string
}

// Init builds the process-wide logger from cfg. Returns a close func
// that flushes buffered entries; callers should defer it.
func Init(cfg Config) (close func(), err error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	base, err := zcfg.Build()
	if err != nil {
		return func() {}, fmt.Errorf("logging: building base logger: %w", err)
	}

	if cfg.GCPProjectID == "" {
		log = base
		return func() { _ = log.Sync() }, nil
	}

	client, err := gcplogging.NewClient(context.Background(), cfg.GCPProjectID)
	if err != nil {
		base.Warn("logging: Cloud Logging client unavailable, continuing with local logs only", zap.Error(err))
		log = base
		return func() { _ = log.Sync() }, nil
	}

	logName := cfg.LogName
	if logName == "" {
		logName = "epcis-hashgen"
	}
	gcpLogger := client.Logger(logName)
	core := zapcore.NewTee(base.Core(), newGCPCore(gcpLogger, zcfg.Level))
	log = zap.New(core)

	return func() {
		_ = log.Sync()
		_ = client.Close()
	}, nil
}

// newGCPCore adapts a *gcplogging.Logger into a zapcore.Core so zap's
// normal field encoding is reused rather than reimplemented.
func newGCPCore(l *gcplogging.Logger, level zap.AtomicLevel) zapcore.Core {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return &gcpCore{logger: l, enc: enc, level: level}
}

type gcpCore struct {
	logger *gcplogging.Logger
	enc    zapcore.Encoder
	level  zap.AtomicLevel
}

func (c *gcpCore) Enabled(lvl zapcore.Level) bool { return c.level.Enabled(lvl) }

func (c *gcpCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.enc = c.enc.Clone()
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return &clone
}

func (c *gcpCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *gcpCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	c.logger.Log(gcplogging.Entry{
		Severity: gcpSeverity(ent.Level),
		Payload:  buf.String(),
	})
	return nil
}

func (c *gcpCore) Sync() error { return c.logger.Flush() }

func gcpSeverity(lvl zapcore.Level) gcplogging.Severity {
	switch lvl {
	case zapcore.DebugLevel:
		return gcplogging.Debug
	case zapcore.InfoLevel:
		return gcplogging.Info
	case zapcore.WarnLevel:
		return gcplogging.Warning
	case zapcore.ErrorLevel:
		return gcplogging.Error
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return gcplogging.Critical
	case zapcore.FatalLevel:
		return gcplogging.Emergency
	default:
		return gcplogging.Default
	}
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Fatal logs msg at Error level, flushes the logger, and exits the
// process with status 1, matching the teacher's logger.Fatal call sites.
func Fatal(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
	_ = log.Sync()
	os.Exit(1)
}

// With returns a child logger carrying fields on every subsequent entry,
// used where a request or batch job id should tag every log line.
func With(fields ...zap.Field) *zap.Logger {
	return log.With(fields...)
}
