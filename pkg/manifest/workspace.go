// Package manifest reads the workspace file that lists local modules.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultFiles are looked up, in order, when no manifest path is given.
var DefaultFiles = []string{"wasmboard.yml", "wasmboard.yaml", "wasmboard.toml"}

// Workspace represents the structure of a wasmboard.yml file
type Workspace struct {
	Modules []ModuleEntry `yaml:"modules" toml:"modules"`

	// Dir is the directory the manifest was loaded from.
	Dir string `yaml:"-" toml:"-"`
}

// ModuleEntry is a single wasm binary in the workspace. ID is optional; zero
// means unassigned.
type ModuleEntry struct {
	Path string `yaml:"path" toml:"path"`
	ID   int64  `yaml:"id,omitempty" toml:"id,omitempty"`
}

// Find returns the first default manifest present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", wberrors.WithDetails(wberrors.ErrInvalidManifest,
		fmt.Sprintf("no manifest found, expected %s in %s", DefaultFiles[0], dir))
}

// Load reads a manifest, picking the parser from the file extension.
func Load(path string) (*Workspace, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	ws, err := Parse(data, filepath.Ext(absPath))
	if err != nil {
		return nil, err
	}

	ws.Dir = filepath.Dir(absPath)
	for i := range ws.Modules {
		if !filepath.IsAbs(ws.Modules[i].Path) {
			ws.Modules[i].Path = filepath.Join(ws.Dir, ws.Modules[i].Path)
		}
	}
	return ws, nil
}

// Parse decodes and normalizes manifest content. ext selects the format
// (".toml", otherwise YAML).
func Parse(data []byte, ext string) (*Workspace, error) {
	var ws Workspace
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &ws); err != nil {
			return nil, wberrors.WithDetails(wberrors.ErrInvalidManifest, err.Error())
		}
	default:
		if err := yaml.UnmarshalStrict(data, &ws); err != nil {
			return nil, wberrors.WithDetails(wberrors.ErrInvalidManifest, err.Error())
		}
	}

	if err := ws.assignIDs(); err != nil {
		return nil, err
	}
	return &ws, nil
}

// assignIDs validates entries and numbers the ones without an id after the
// highest explicit id, in file order.
func (w *Workspace) assignIDs() error {
	seen := make(map[int64]int, len(w.Modules))
	var maxID int64
	for i, entry := range w.Modules {
		if strings.TrimSpace(entry.Path) == "" {
			return wberrors.WithDetails(wberrors.ErrInvalidManifest,
				fmt.Sprintf("modules[%d] is missing required 'path' field", i))
		}
		if entry.ID < 0 {
			return wberrors.WithDetails(wberrors.ErrInvalidManifest,
				fmt.Sprintf("modules[%d] has negative id %d", i, entry.ID))
		}
		if entry.ID == 0 {
			continue
		}
		if prev, dup := seen[entry.ID]; dup {
			return wberrors.WithDetails(wberrors.ErrInvalidManifest,
				fmt.Sprintf("modules[%d] reuses id %d from modules[%d]", i, entry.ID, prev))
		}
		seen[entry.ID] = i
		if entry.ID > maxID {
			maxID = entry.ID
		}
	}

	for i := range w.Modules {
		if w.Modules[i].ID == 0 {
			maxID++
			w.Modules[i].ID = maxID
		}
	}
	return nil
}

// Encode renders the manifest in the format selected by ext.
func (w *Workspace) Encode(ext string) ([]byte, error) {
	if strings.ToLower(ext) == ".toml" {
		return toml.Marshal(w)
	}
	return yaml.Marshal(w)
}
