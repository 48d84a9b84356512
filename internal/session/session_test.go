package session

import (
	"os"
	"path/filepath"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ignitionstack/wasmboard/internal/repository"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/ignitionstack/wasmboard/pkg/modules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSetup struct {
	session *Session
	dbRepo  repository.DBRepository
	tmpDir  string
	cleanup func()
}

func setupTestSession(t *testing.T) *testSetup {
	tmpDir, err := os.MkdirTemp("", "session-test-*")
	require.NoError(t, err)

	opts := badger.DefaultOptions(filepath.Join(tmpDir, "db"))
	opts.Logger = nil // Disable logging for tests

	db, err := badger.Open(opts)
	require.NoError(t, err)

	dbRepo := repository.NewBadgerDBRepository(db)

	return &testSetup{
		session: New(dbRepo, tmpDir, nil),
		dbRepo:  dbRepo,
		tmpDir:  tmpDir,
		cleanup: func() {
			db.Close()
			os.RemoveAll(tmpDir)
		},
	}
}

var sample = []api.Module{
	{ID: 1, ModuleHash: "aa", Functions: []api.Function{{Function: "add", Signature: "i32,i32->i32"}}},
	{ID: 2, ModuleHash: "bb", Functions: []api.Function{}},
}

func TestModules(t *testing.T) {
	setup := setupTestSession(t)
	defer setup.cleanup()

	t.Run("empty before first save", func(t *testing.T) {
		mods, err := setup.session.LoadModules()
		require.NoError(t, err)
		assert.NotNil(t, mods)
		assert.Empty(t, mods)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, setup.session.SaveModules(sample))

		mods, err := setup.session.LoadModules()
		require.NoError(t, err)
		assert.Equal(t, sample, mods)
	})

	t.Run("corrupt data is rejected", func(t *testing.T) {
		err := setup.dbRepo.Update(func(txn *badger.Txn) error {
			return txn.Set(modulesKey, []byte(`{"modules": [{"id": "x"}]}`))
		})
		require.NoError(t, err)

		_, err = setup.session.LoadModules()
		require.Error(t, err)
		assert.ErrorIs(t, err, wberrors.ErrInvalidPayload)
		assert.Contains(t, err.Error(), "modules[0].id")
	})
}

func TestToken(t *testing.T) {
	setup := setupTestSession(t)
	defer setup.cleanup()

	_, err := setup.session.Token()
	assert.ErrorIs(t, err, wberrors.ErrSessionNotFound)

	err = setup.session.SaveToken("")
	assert.ErrorIs(t, err, wberrors.ErrInvalidPayload)

	require.NoError(t, setup.session.SaveToken("header.payload.sig"))
	token, err := setup.session.Token()
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", token)
}

func TestClear(t *testing.T) {
	setup := setupTestSession(t)
	defer setup.cleanup()

	require.NoError(t, setup.session.SaveModules(sample))
	require.NoError(t, setup.session.SaveToken("tok"))
	require.NoError(t, setup.session.Clear())

	mods, err := setup.session.LoadModules()
	require.NoError(t, err)
	assert.Empty(t, mods)

	_, err = setup.session.Token()
	assert.ErrorIs(t, err, wberrors.ErrSessionNotFound)

	// clearing twice is fine
	require.NoError(t, setup.session.Clear())
}

func TestBind(t *testing.T) {
	setup := setupTestSession(t)
	defer setup.cleanup()

	require.NoError(t, setup.session.SaveModules(sample))

	store := modules.New()
	unbind := setup.session.Bind(store)

	// binding does not overwrite what is stored
	mods, err := setup.session.LoadModules()
	require.NoError(t, err)
	assert.Equal(t, sample, mods)

	store.Set(sample[:1])
	mods, err = setup.session.LoadModules()
	require.NoError(t, err)
	assert.Equal(t, sample[:1], mods)

	unbind()
	store.Set([]api.Module{})
	mods, err = setup.session.LoadModules()
	require.NoError(t, err)
	assert.Equal(t, sample[:1], mods)
}

func TestBinaries(t *testing.T) {
	setup := setupTestSession(t)
	defer setup.cleanup()

	code := []byte("\x00asm\x01\x00\x00\x00")
	hash, err := setup.session.PutBinary(code)
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.FileExists(t, filepath.Join(setup.tmpDir, "storage", hash[:2], hash+".wasm"))

	got, err := setup.session.Binary(hash)
	require.NoError(t, err)
	assert.Equal(t, code, got)

	_, err = setup.session.Binary("0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, wberrors.ErrModuleNotFound)

	_, err = setup.session.Binary("../../etc/passwd")
	assert.ErrorIs(t, err, wberrors.ErrInvalidModule)
}
