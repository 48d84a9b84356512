// Package session persists the module list, the auth token and uploaded wasm
// binaries between CLI invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ignitionstack/wasmboard/internal/repository"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/ignitionstack/wasmboard/pkg/modules"
	"github.com/ignitionstack/wasmboard/pkg/wasm"
	"go.uber.org/zap"
)

var (
	modulesKey = []byte("session:modules")
	tokenKey   = []byte("session:token")
)

type Session struct {
	dbRepo  repository.DBRepository
	storage *BinaryStorage
	logger  *zap.Logger
}

func New(dbRepo repository.DBRepository, rootDir string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		dbRepo:  dbRepo,
		storage: NewBinaryStorage(rootDir),
		logger:  logger,
	}
}

// LoadModules returns the persisted module list, or an empty list if nothing
// was saved yet. Stored data is validated like a server listing.
func (s *Session) LoadModules() ([]api.Module, error) {
	val, err := s.get(modulesKey)
	if errors.Is(err, wberrors.ErrSessionNotFound) {
		return []api.Module{}, nil
	}
	if err != nil {
		return nil, err
	}

	listing, err := api.Parse(val, api.ValidateModulesResponse).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("stored module list is corrupt: %w", err)
	}
	return listing.Modules, nil
}

func (s *Session) SaveModules(mods []api.Module) error {
	if mods == nil {
		mods = []api.Module{}
	}
	val, err := json.Marshal(api.ModulesResponse{Modules: mods})
	if err != nil {
		return fmt.Errorf("failed to marshal modules: %w", err)
	}
	return s.set(modulesKey, val)
}

// SaveToken stores the JWT returned by a login. Empty tokens are rejected.
func (s *Session) SaveToken(token string) error {
	resp, err := api.ValidateLoginResponse(map[string]any{"jwt": token}).Unwrap()
	if err != nil {
		return err
	}
	return s.set(tokenKey, []byte(resp.JWT))
}

// Token returns the stored JWT or ErrSessionNotFound.
func (s *Session) Token() (string, error) {
	val, err := s.get(tokenKey)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Clear forgets the module list and the token. Stored binaries are kept.
func (s *Session) Clear() error {
	return s.dbRepo.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{modulesKey, tokenKey} {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// Bind persists every change of store. The value current at bind time is not
// written. The returned function stops persisting.
func (s *Session) Bind(store *modules.Store) (unbind func()) {
	first := true
	return store.Subscribe(func(mods []api.Module) {
		if first {
			first = false
			return
		}
		if err := s.SaveModules(mods); err != nil {
			s.logger.Error("failed to persist modules", zap.Error(err))
			return
		}
		s.logger.Debug("modules persisted", zap.Int("modules", len(mods)))
	})
}

// PutBinary stores a wasm binary under its hash and returns the hash.
func (s *Session) PutBinary(code []byte) (string, error) {
	hash := wasm.Hash(code)
	if err := s.storage.Write(hash, code); err != nil {
		return "", err
	}
	return hash, nil
}

// Binary reads a stored wasm binary by module hash.
func (s *Session) Binary(hash string) ([]byte, error) {
	return s.storage.Read(hash)
}

func (s *Session) get(key []byte) ([]byte, error) {
	var val []byte
	err := s.dbRepo.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return wberrors.WithDetails(wberrors.ErrSessionNotFound, string(key))
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (s *Session) set(key, val []byte) error {
	return s.dbRepo.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, val); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		return nil
	})
}
