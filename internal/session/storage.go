package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// BinaryStorage keeps wasm binaries on disk, addressed by module hash.
type BinaryStorage struct {
	rootDir string
}

func NewBinaryStorage(rootDir string) *BinaryStorage {
	return &BinaryStorage{rootDir: rootDir}
}

func (s *BinaryStorage) Read(hash string) ([]byte, error) {
	path, err := s.path(hash)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wberrors.WithDetails(wberrors.ErrModuleNotFound, fmt.Sprintf("binary %s", hash))
		}
		return nil, fmt.Errorf("failed to read WASM file: %w", err)
	}
	return data, nil
}

func (s *BinaryStorage) Write(hash string, data []byte) error {
	path, err := s.path(hash)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write WASM file: %w", err)
	}
	return nil
}

func (s *BinaryStorage) path(hash string) (string, error) {
	if !hashPattern.MatchString(hash) {
		return "", wberrors.WithDetails(wberrors.ErrInvalidModule, fmt.Sprintf("malformed module hash %q", hash))
	}
	return filepath.Join(s.rootDir, "storage", hash[:2], hash+".wasm"), nil
}
