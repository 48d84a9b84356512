package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ignitionstack/wasmboard/internal/session"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/ignitionstack/wasmboard/pkg/manifest"
	"github.com/ignitionstack/wasmboard/pkg/modules"
	"github.com/ignitionstack/wasmboard/pkg/wasm"
	"go.uber.org/zap"
)

// ModuleService defines the operations the CLI performs on the module list
type ModuleService interface {
	// List returns the modules currently held
	List() []api.Module

	// Load replaces the module list with a server listing document
	Load(data []byte) ([]api.Module, error)

	// Add inspects a wasm file, stores its binary and appends it with the next free id
	Add(ctx context.Context, path string) (*api.Module, error)

	// Remove drops the module with the given id
	Remove(id int64) error

	// Clear empties the module list
	Clear()

	// Sync replaces the module list with the binaries named by a workspace manifest
	Sync(ctx context.Context, manifestPath string) ([]api.Module, error)

	// Inspect describes a wasm file without storing it
	Inspect(ctx context.Context, path string) (*api.Module, error)

	// Call runs a function of a stored module (ref is its id) or of a wasm file (ref is a path)
	Call(ctx context.Context, ref, function string, params []float64) (*api.FunctionResult, error)
}

// moduleService implements the ModuleService interface
type moduleService struct {
	store   *modules.Store
	session *session.Session
	runtime wasm.Runtime
	logger  *zap.Logger
}

// NewModuleService creates a new instance of the module service
func NewModuleService(store *modules.Store, sess *session.Session, runtime wasm.Runtime, logger *zap.Logger) ModuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &moduleService{
		store:   store,
		session: sess,
		runtime: runtime,
		logger:  logger,
	}
}

func (s *moduleService) List() []api.Module {
	return s.store.Get()
}

func (s *moduleService) Load(data []byte) ([]api.Module, error) {
	listing, err := api.Parse(data, api.ValidateModulesResponse).Unwrap()
	if err != nil {
		return nil, err
	}
	s.store.Set(listing.Modules)
	return listing.Modules, nil
}

func (s *moduleService) Add(ctx context.Context, path string) (*api.Module, error) {
	module, err := s.inspectAndStore(ctx, path)
	if err != nil {
		return nil, err
	}

	s.store.Update(func(current []api.Module) []api.Module {
		for _, m := range current {
			if m.ModuleHash == module.ModuleHash {
				*module = m
				return current
			}
		}
		module.ID = nextID(current)
		return append(current, *module)
	})

	s.logger.Info("module added", zap.Int64("id", module.ID), zap.String("hash", module.ModuleHash))
	return module, nil
}

func (s *moduleService) Remove(id int64) error {
	found := false
	s.store.Update(func(current []api.Module) []api.Module {
		kept := current[:0]
		for _, m := range current {
			if m.ID == id {
				found = true
				continue
			}
			kept = append(kept, m)
		}
		return kept
	})
	if !found {
		return wberrors.WithDetails(wberrors.ErrModuleNotFound, fmt.Sprintf("module %d", id))
	}
	return nil
}

func (s *moduleService) Clear() {
	s.store.Set([]api.Module{})
}

func (s *moduleService) Sync(ctx context.Context, manifestPath string) ([]api.Module, error) {
	if manifestPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		if manifestPath, err = manifest.Find(cwd); err != nil {
			return nil, err
		}
	}

	ws, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	mods := make([]api.Module, 0, len(ws.Modules))
	for _, entry := range ws.Modules {
		module, err := s.inspectAndStore(ctx, entry.Path)
		if err != nil {
			return nil, err
		}
		module.ID = entry.ID
		mods = append(mods, *module)
	}

	s.store.Set(mods)
	s.logger.Info("workspace synced", zap.String("manifest", manifestPath), zap.Int("modules", len(mods)))
	return mods, nil
}

func (s *moduleService) Inspect(ctx context.Context, path string) (*api.Module, error) {
	code, err := readWASMFile(path)
	if err != nil {
		return nil, err
	}
	return s.runtime.Inspect(ctx, code)
}

func (s *moduleService) Call(ctx context.Context, ref, function string, params []float64) (*api.FunctionResult, error) {
	code, err := s.resolve(ref, function)
	if err != nil {
		return nil, err
	}

	result, err := s.runtime.Call(ctx, code, function, params)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("function returned", zap.String("function", function), zap.Float64s("values", result.ReturnValue))
	return result, nil
}

// resolve returns the binary for ref. A numeric ref names a module in the
// list, which must declare function; anything else is a file path.
func (s *moduleService) resolve(ref, function string) ([]byte, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return readWASMFile(ref)
	}

	for _, m := range s.store.Get() {
		if m.ID != id {
			continue
		}
		if _, ok := m.Function(function); !ok {
			return nil, wberrors.WithDetails(wberrors.ErrFunctionNotFound,
				fmt.Sprintf("module %d has no function %s", id, function))
		}
		return s.session.Binary(m.ModuleHash)
	}
	return nil, wberrors.WithDetails(wberrors.ErrModuleNotFound, fmt.Sprintf("module %d", id))
}

func (s *moduleService) inspectAndStore(ctx context.Context, path string) (*api.Module, error) {
	code, err := readWASMFile(path)
	if err != nil {
		return nil, err
	}
	module, err := s.runtime.Inspect(ctx, code)
	if err != nil {
		return nil, wberrors.WithDetails(err, path)
	}
	if _, err := s.session.PutBinary(code); err != nil {
		return nil, err
	}
	return module, nil
}

func readWASMFile(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wberrors.WithDetails(wberrors.ErrModuleNotFound, fmt.Sprintf("file %s", path))
		}
		return nil, fmt.Errorf("failed to read WASM file: %w", err)
	}
	return code, nil
}

// nextID returns one past the highest id in mods.
func nextID(mods []api.Module) int64 {
	var maxID int64
	for _, m := range mods {
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	return maxID + 1
}
