package guest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/anyvalue/errors"
)

// EngineConfig holds engine configuration
type EngineConfig struct {
	// MemoryLimitPages caps linear memory per instance (64 KiB pages).
	MemoryLimitPages uint32
}

// Engine compiles and runs core WebAssembly modules with wazero.
// Engine and Module are safe for concurrent use; Functor is not.
type Engine struct {
	runtime wazero.Runtime
	mu      sync.Mutex
	modules []*Module
	seq     atomic.Uint64
}

// NewEngine creates a new wazero-backed engine
func NewEngine(ctx context.Context, cfg *EngineConfig) *Engine {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}
}

// Load compiles a core module. The module must not have imports.
func (e *Engine) Load(ctx context.Context, name string, wasm []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			Path(name).
			Detail("compile module").
			Cause(err).
			Build()
	}
	if imports := compiled.ImportedFunctions(); len(imports) > 0 {
		_ = compiled.Close(ctx)
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Path(name).
			Detail("module imports %d host functions", len(imports)).
			Build()
	}

	m := &Module{engine: e, name: name, compiled: compiled}
	e.mu.Lock()
	e.modules = append(e.modules, m)
	e.mu.Unlock()

	Logger().Debug("guest module compiled",
		zap.String("module", name),
		zap.Int("exports", len(compiled.ExportedFunctions())))
	return m, nil
}

// Close releases the runtime and every module and instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	modules := e.modules
	e.modules = nil
	e.mu.Unlock()

	for _, m := range modules {
		if err := m.compiled.Close(ctx); err != nil {
			Logger().Warn("failed to close compiled module",
				zap.String("module", m.name),
				zap.Error(err))
		}
	}
	return e.runtime.Close(ctx)
}

// Module is a compiled guest module. Each Functor bound from it runs in its
// own instance with its own memory and globals.
type Module struct {
	engine   *Engine
	compiled wazero.CompiledModule
	name     string
}

// Export describes one exported function.
type Export struct {
	Name      string
	Signature Signature
}

func (m *Module) Name() string { return m.name }

// Exports lists exported functions with inferred signatures, sorted by name.
// Functions using reference types are skipped.
func (m *Module) Exports() []Export {
	defs := m.compiled.ExportedFunctions()
	out := make([]Export, 0, len(defs))
	for name, def := range defs {
		sig, err := InferSignature(def)
		if err != nil {
			continue
		}
		out = append(out, Export{Name: name, Signature: sig})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Functor instantiates the module and binds export. A nil sig infers kinds
// from the wasm types.
func (m *Module) Functor(ctx context.Context, export string, sig *Signature) (*Functor, error) {
	def, ok := m.compiled.ExportedFunctions()[export]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}

	var s Signature
	if sig == nil {
		inferred, err := InferSignature(def)
		if err != nil {
			return nil, err
		}
		s = inferred
	} else {
		if err := sig.check(export, def); err != nil {
			return nil, err
		}
		s = Signature{
			Params:  append(sig.Params[:0:0], sig.Params...),
			Results: append(sig.Results[:0:0], sig.Results...),
		}
	}

	instName := m.name + "#" + strconv.FormatUint(m.engine.seq.Add(1), 10)
	inst, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, wazero.NewModuleConfig().WithName(instName))
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	fn := inst.ExportedFunction(export)
	if fn == nil {
		_ = inst.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", export)
	}

	Logger().Debug("guest functor bound",
		zap.String("module", m.name),
		zap.String("instance", instName),
		zap.String("export", export),
		zap.Stringer("signature", s))

	return &Functor{
		ctx:      ctx,
		inst:     inst,
		fn:       fn,
		export:   export,
		sig:      s,
		resultVT: def.ResultTypes(),
	}, nil
}

// Close releases the compiled module. Instances already bound keep running
// until their functors are closed.
func (m *Module) Close(ctx context.Context) error {
	e := m.engine
	e.mu.Lock()
	for i, other := range e.modules {
		if other == m {
			e.modules = append(e.modules[:i], e.modules[i+1:]...)
			break
		}
	}
	e.mu.Unlock()
	return m.compiled.Close(ctx)
}
