package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ignitionstack/wasmboard/internal/repository"
	"github.com/ignitionstack/wasmboard/internal/session"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/ignitionstack/wasmboard/pkg/modules"
	"github.com/ignitionstack/wasmboard/pkg/wasm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mathWASM = "testdata/math.wasm"

var mathFunctions = []api.Function{
	{Function: "add", Signature: "i32,i32->i32"},
	{Function: "dbl", Signature: "f32->f32"},
	{Function: "boom", Signature: "->"},
	{Function: "spin", Signature: "->"},
}

type testSetup struct {
	service ModuleService
	store   *modules.Store
	session *session.Session
	tmpDir  string
}

func setupTestService(t *testing.T) *testSetup {
	tmpDir, err := os.MkdirTemp("", "module-service-test-*")
	require.NoError(t, err)

	opts := badger.DefaultOptions(filepath.Join(tmpDir, "db"))
	opts.Logger = nil // Disable logging for tests

	db, err := badger.Open(opts)
	require.NoError(t, err)

	runtime := wasm.NewWazeroRuntime(time.Second, nil)
	store := modules.New()
	sess := session.New(repository.NewBadgerDBRepository(db), tmpDir, nil)

	t.Cleanup(func() {
		runtime.Close(context.Background())
		db.Close()
		os.RemoveAll(tmpDir)
	})

	return &testSetup{
		service: NewModuleService(store, sess, runtime, nil),
		store:   store,
		session: sess,
		tmpDir:  tmpDir,
	}
}

func TestAdd(t *testing.T) {
	setup := setupTestService(t)
	ctx := context.Background()

	first, err := setup.service.Add(ctx, mathWASM)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, mathFunctions, first.Functions)

	t.Run("binary is stored", func(t *testing.T) {
		code, err := setup.session.Binary(first.ModuleHash)
		require.NoError(t, err)
		expected, err := os.ReadFile(mathWASM)
		require.NoError(t, err)
		assert.Equal(t, expected, code)
	})

	t.Run("same binary is not added twice", func(t *testing.T) {
		again, err := setup.service.Add(ctx, mathWASM)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Len(t, setup.service.List(), 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := setup.service.Add(ctx, "testdata/nope.wasm")
		assert.ErrorIs(t, err, wberrors.ErrModuleNotFound)
	})

	t.Run("invalid binary", func(t *testing.T) {
		path := filepath.Join(setup.tmpDir, "bad.wasm")
		require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))
		_, err := setup.service.Add(ctx, path)
		assert.ErrorIs(t, err, wberrors.ErrInvalidModule)
	})
}

func TestLoadAndRemove(t *testing.T) {
	setup := setupTestService(t)

	var seen [][]api.Module
	setup.store.Subscribe(func(mods []api.Module) { seen = append(seen, mods) })

	mods, err := setup.service.Load([]byte(`{"modules": [
		{"id": 4, "module_hash": "aa", "functions": []},
		{"id": 9, "module_hash": "bb", "functions": [{"function": "f", "signature": "->"}]}
	]}`))
	require.NoError(t, err)
	assert.Len(t, mods, 2)

	require.NoError(t, setup.service.Remove(4))
	assert.Equal(t, []int64{9}, ids(setup.service.List()))

	err = setup.service.Remove(4)
	assert.ErrorIs(t, err, wberrors.ErrModuleNotFound)

	setup.service.Clear()
	assert.Empty(t, setup.service.List())

	t.Run("invalid listing leaves store untouched", func(t *testing.T) {
		before := len(seen)
		_, err := setup.service.Load([]byte(`{"modules": [{"id": 1}]}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, wberrors.ErrInvalidPayload)
		assert.Len(t, seen, before)
	})
}

func TestSync(t *testing.T) {
	setup := setupTestService(t)

	abs, err := filepath.Abs(mathWASM)
	require.NoError(t, err)

	manifestPath := filepath.Join(setup.tmpDir, "wasmboard.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("modules:\n  - path: "+abs+"\n    id: 12\n  - path: "+abs+"\n"), 0644))

	mods, err := setup.service.Sync(context.Background(), manifestPath)
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 13}, ids(mods))
	assert.Equal(t, mods, setup.service.List())
}

func TestCall(t *testing.T) {
	setup := setupTestService(t)
	ctx := context.Background()

	added, err := setup.service.Add(ctx, mathWASM)
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		result, err := setup.service.Call(ctx, "1", "add", []float64{40, 2})
		require.NoError(t, err)
		assert.Equal(t, []float64{42}, result.ReturnValue)
	})

	t.Run("by path", func(t *testing.T) {
		result, err := setup.service.Call(ctx, mathWASM, "dbl", []float64{0.5})
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, result.ReturnValue)
	})

	t.Run("unknown module id", func(t *testing.T) {
		_, err := setup.service.Call(ctx, "99", "add", []float64{1, 2})
		assert.ErrorIs(t, err, wberrors.ErrModuleNotFound)
	})

	t.Run("function not declared by module", func(t *testing.T) {
		_, err := setup.service.Call(ctx, "1", "sub", nil)
		assert.ErrorIs(t, err, wberrors.ErrFunctionNotFound)
	})

	t.Run("trap", func(t *testing.T) {
		_, err := setup.service.Call(ctx, "1", "boom", nil)
		assert.ErrorIs(t, err, wberrors.ErrExecution)
	})

	t.Run("inspect matches added module", func(t *testing.T) {
		inspected, err := setup.service.Inspect(ctx, mathWASM)
		require.NoError(t, err)
		assert.Equal(t, added.ModuleHash, inspected.ModuleHash)
		assert.Equal(t, added.Functions, inspected.Functions)
	})
}

func ids(mods []api.Module) []int64 {
	out := make([]int64, len(mods))
	for i, m := range mods {
		out[i] = m.ID
	}
	return out
}
