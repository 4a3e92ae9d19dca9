package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/wippyai/anyvalue/config"
	"github.com/wippyai/anyvalue/guest"
)

// interruptContext is cancelled on SIGINT or SIGTERM so that a running
// dispatch stops handing out inputs.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// session holds everything a command needs once the config is loaded.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *guest.Engine
	module *guest.Module
}

func openSession(ctx context.Context, location string) (*session, error) {
	URL, err := configURL(location)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	guest.SetLogger(logger)

	data, err := cfg.LoadModule(ctx)
	if err != nil {
		return nil, err
	}
	engine := guest.NewEngine(ctx, cfg.EngineConfig())
	name := strings.TrimSuffix(path.Base(cfg.ModuleURL()), ".wasm")
	mod, err := engine.Load(ctx, name, data)
	if err != nil {
		_ = engine.Close(ctx)
		return nil, err
	}
	logger.Debug("session opened",
		zap.String("config", URL),
		zap.String("module", cfg.ModuleURL()))
	return &session{cfg: cfg, logger: logger, engine: engine, module: mod}, nil
}

// Close releases the engine even when ctx is already cancelled.
func (s *session) Close(ctx context.Context) {
	if err := s.engine.Close(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("failed to close engine", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// signatureFor returns the configured signature when export is the
// configured function, otherwise nil so kinds are inferred.
func (s *session) signatureFor(export string) (*guest.Signature, error) {
	if export != s.cfg.Function {
		return nil, nil
	}
	return s.cfg.Signature()
}

// configURL turns a plain path into an absolute file URL so that relative
// module locations resolve against the config directory.
func configURL(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolve config path %q: %w", location, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
