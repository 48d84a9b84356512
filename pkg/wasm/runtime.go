package wasm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/tetratelabs/wazero"
	wazeroapi "github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Runtime inspects and executes WebAssembly modules locally, producing the
// same contracts the hosting API returns.
type Runtime interface {
	// Inspect describes the exported functions of a module. The returned
	// module has no id; ids are assigned by whoever stores it.
	Inspect(ctx context.Context, code []byte) (*api.Module, error)

	// Call runs an exported function with numeric parameters.
	Call(ctx context.Context, code []byte, function string, params []float64) (*api.FunctionResult, error)

	Close(ctx context.Context) error
}

// WazeroRuntime implements Runtime on wazero. Compiled modules are shared
// through an in-memory compilation cache for the lifetime of the runtime.
type WazeroRuntime struct {
	timeout time.Duration
	cache   wazero.CompilationCache
	logger  *zap.Logger
}

// NewWazeroRuntime creates a runtime. A zero timeout disables the call deadline.
func NewWazeroRuntime(timeout time.Duration, logger *zap.Logger) *WazeroRuntime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WazeroRuntime{
		timeout: timeout,
		cache:   wazero.NewCompilationCache(),
		logger:  logger,
	}
}

// Hash returns the content hash used as module_hash.
func Hash(code []byte) string {
	sum := sha256.Sum256(code)
	return hex.EncodeToString(sum[:])
}

// Inspect implements Runtime. Functions are ordered by function index, then
// export name.
func (r *WazeroRuntime) Inspect(ctx context.Context, code []byte) (*api.Module, error) {
	rt := r.newRuntime(ctx)
	defer rt.Close(context.Background())

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wberrors.ErrInvalidModule, err)
	}
	defer compiled.Close(context.Background())

	exports := compiled.ExportedFunctions()
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := exports[names[i]], exports[names[j]]
		if a.Index() != b.Index() {
			return a.Index() < b.Index()
		}
		return names[i] < names[j]
	})

	module := &api.Module{
		ModuleHash: Hash(code),
		Functions:  make([]api.Function, 0, len(names)),
	}
	for _, name := range names {
		sig, err := signatureOf(exports[name])
		if err != nil {
			return nil, wberrors.WithDetails(err, fmt.Sprintf("export %q", name))
		}
		module.Functions = append(module.Functions, api.Function{
			Function:  name,
			Signature: sig.String(),
		})
	}

	r.logger.Debug("inspected module",
		zap.String("hash", module.ModuleHash),
		zap.Int("functions", len(module.Functions)))

	return module, nil
}

// Call implements Runtime.
func (r *WazeroRuntime) Call(ctx context.Context, code []byte, function string, params []float64) (*api.FunctionResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	rt := r.newRuntime(ctx)
	defer rt.Close(context.Background())

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wberrors.ErrInvalidModule, err)
	}

	def, ok := compiled.ExportedFunctions()[function]
	if !ok {
		return nil, wberrors.WithDetails(wberrors.ErrFunctionNotFound, fmt.Sprintf("function %s", function))
	}
	sig, err := signatureOf(def)
	if err != nil {
		return nil, err
	}

	stack, err := encodeParams(sig.Params, params)
	if err != nil {
		return nil, err
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to instantiate: %v", wberrors.ErrInvalidModule, err)
	}

	start := time.Now()
	raw, err := mod.ExportedFunction(function).Call(ctx, stack...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", wberrors.ErrExecution, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", wberrors.ErrExecution, err)
	}

	r.logger.Debug("function called",
		zap.String("function", function),
		zap.String("signature", sig.String()),
		zap.Duration("elapsed", time.Since(start)))

	return &api.FunctionResult{ReturnValue: decodeResults(sig.Results, raw)}, nil
}

// Close releases compiled code held by the cache.
func (r *WazeroRuntime) Close(ctx context.Context) error {
	return r.cache.Close(ctx)
}

func (r *WazeroRuntime) newRuntime(ctx context.Context) wazero.Runtime {
	cfg := wazero.NewRuntimeConfig().
		WithCompilationCache(r.cache).
		WithCloseOnContextDone(true)
	return wazero.NewRuntimeWithConfig(ctx, cfg)
}

func signatureOf(def wazeroapi.FunctionDefinition) (api.Signature, error) {
	params, err := valueTypes(def.ParamTypes())
	if err != nil {
		return api.Signature{}, err
	}
	results, err := valueTypes(def.ResultTypes())
	if err != nil {
		return api.Signature{}, err
	}
	return api.Signature{Params: params, Results: results}, nil
}

func valueTypes(types []wazeroapi.ValueType) ([]api.ValueType, error) {
	out := make([]api.ValueType, 0, len(types))
	for _, t := range types {
		vt, err := api.ParseValueType(wazeroapi.ValueTypeName(t))
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, nil
}

func encodeParams(types []api.ValueType, params []float64) ([]uint64, error) {
	if len(params) != len(types) {
		return nil, wberrors.WithDetails(wberrors.ErrWrongParameterType,
			fmt.Sprintf("expected %d parameters, got %d", len(types), len(params)))
	}

	stack := make([]uint64, len(params))
	for i, p := range params {
		switch types[i] {
		case api.I32:
			if p != math.Trunc(p) || p < math.MinInt32 || p > math.MaxInt32 {
				return nil, wrongType(i, types[i], p)
			}
			stack[i] = wazeroapi.EncodeI32(int32(p))
		case api.I64:
			if p != math.Trunc(p) || p < math.MinInt64 || p >= math.MaxInt64 {
				return nil, wrongType(i, types[i], p)
			}
			stack[i] = wazeroapi.EncodeI64(int64(p))
		case api.F32:
			stack[i] = wazeroapi.EncodeF32(float32(p))
		case api.F64:
			stack[i] = wazeroapi.EncodeF64(p)
		}
	}
	return stack, nil
}

func wrongType(i int, want api.ValueType, got float64) error {
	return wberrors.WithDetails(wberrors.ErrWrongParameterType,
		fmt.Sprintf("parameter %d: expected type %s but got %v", i, want, got))
}

func decodeResults(types []api.ValueType, raw []uint64) []float64 {
	values := make([]float64, len(types))
	for i, t := range types {
		switch t {
		case api.I32:
			values[i] = float64(wazeroapi.DecodeI32(raw[i]))
		case api.I64:
			values[i] = float64(int64(raw[i]))
		case api.F32:
			values[i] = float64(wazeroapi.DecodeF32(raw[i]))
		case api.F64:
			values[i] = wazeroapi.DecodeF64(raw[i])
		}
	}
	return values
}
