package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/anyvalue/errors"
	"github.com/wippyai/anyvalue/types"
)

const sample = `
module: filters.wasm
function: clamp
params: [int32]
result: int8
workers: 10
inputs: ["1", "300"]
log:
  level: debug
  development: true
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("module: m.wasm\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	require.NotNil(t, cfg.Log)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Log.Development)

	sig, err := cfg.Signature()
	require.NoError(t, err)
	assert.Nil(t, sig, "no kinds declared means inferred signature")
	require.NoError(t, cfg.Validate())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("workers: [1"))
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.PhaseParse, e.Phase)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "anyvalue.yaml")
	require.NoError(t, os.WriteFile(location, []byte(sample), 0o644))

	cfg, err := Load(context.Background(), "file://"+location)
	require.NoError(t, err)

	assert.Equal(t, "clamp", cfg.Function)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, []string{"1", "300"}, cfg.Inputs)
	assert.Equal(t, "file://"+filepath.Join(dir, "filters.wasm"), cfg.ModuleURL())

	sig, err := cfg.Signature()
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, []types.Kind{types.KindInt32}, sig.Params)
	assert.Equal(t, []types.Kind{types.KindInt8}, sig.Results)

	logger, err := cfg.Log.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestLoad_Memory(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/anyvalue/config.yaml"
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, URL, 0o644, bytes.NewReader([]byte(sample))))
	require.NoError(t, fs.Upload(ctx, "mem://localhost/anyvalue/filters.wasm", 0o644, bytes.NewReader([]byte{0x00, 0x61, 0x73, 0x6d})))

	cfg, err := Load(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/anyvalue/filters.wasm", cfg.ModuleURL())

	data, err := cfg.LoadModule(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d}, data)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), "file://"+filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
		kind  errors.Kind
	}{
		{"no module", Config{Workers: 1}, "module", errors.KindInvalidInput},
		{"bad workers", Config{Module: "m", Workers: -2}, "workers", errors.KindInvalidInput},
		{"result twice", Config{Module: "m", Workers: 1, Function: "f", Result: "int8", Results: []string{"int8"}}, "results", errors.KindInvalidInput},
		{"kinds without function", Config{Module: "m", Workers: 1, Params: []string{"int8"}}, "function", errors.KindInvalidInput},
		{"composite kind", Config{Module: "m", Workers: 1, Function: "f", Params: []string{"string"}}, "params", errors.KindUnsupported},
		{"unknown kind", Config{Module: "m", Workers: 1, Function: "f", Result: "int128"}, "results", errors.KindUnsupported},
		{"bad level", Config{Module: "m", Workers: 1, Log: &Log{Level: "loud"}}, "log.level", errors.KindInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.PhaseConfig, e.Phase)
			assert.Equal(t, tc.kind, e.Kind)
			require.NotEmpty(t, e.Path)
			assert.Equal(t, tc.field, e.Path[0])
		})
	}
}

func TestSignature_EmptyResult(t *testing.T) {
	cfg := Config{Module: "m", Workers: 1, Function: "tick", Params: []string{}, Result: "Empty"}
	sig, err := cfg.Signature()
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Empty(t, sig.Params)
	assert.Empty(t, sig.Results)

	cfg = Config{Module: "m", Workers: 1, Function: "divmod", Params: []string{"int32", "int32"}, Results: []string{"int16", "uint8"}}
	sig, err = cfg.Signature()
	require.NoError(t, err)
	assert.Equal(t, []types.Kind{types.KindInt16, types.KindUInt8}, sig.Results)
}

func TestLog_Build(t *testing.T) {
	logger, err := (&Log{Level: "warn"}).Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	var nilLog *Log
	logger, err = nilLog.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
