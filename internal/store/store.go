package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studiowebux/hotkeyctl/internal/config"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileVersion is written into every saved hotkey file.
const FileVersion = "1.0"

// File is the on-disk shape of the hotkey configuration.
type File struct {
	Version string            `json:"version" yaml:"version"`
	Hotkeys map[string]string `json:"hotkeys" yaml:"hotkeys"`
}

// Manager loads and saves the hotkey file at a fixed path.
type Manager struct {
	path string
}

// NewManager creates a manager for path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the file path.
func (m *Manager) Path() string {
	return m.path
}

// ReadFile reads and decodes the hotkey file without applying it.
// JSON files may contain comments and trailing commas. Files ending in
// .yaml or .yml are decoded as YAML.
func (m *Manager) ReadFile() (*File, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, err
	}
	return Decode(m.path, data)
}

// Decode parses data according to the extension of name.
func Decode(name string, data []byte) (*File, error) {
	var f File
	if isYAML(name) {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("invalid %s format: %w", filepath.Base(name), err)
		}
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, fmt.Errorf("invalid %s format: %w", filepath.Base(name), err)
		}
	}
	if f.Hotkeys == nil {
		f.Hotkeys = make(map[string]string)
	}
	return &f, nil
}

// Load returns the default table with the file's bindings applied over
// it. A missing file is not an error; the defaults are returned as is.
func (m *Manager) Load() (*hotkey.Table, error) {
	table := hotkey.DefaultTable()

	f, err := m.ReadFile()
	if errors.Is(err, os.ErrNotExist) {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hotkeys: %w", err)
	}

	if err := Apply(table, f); err != nil {
		return nil, fmt.Errorf("failed to apply hotkeys: %w", err)
	}
	return table, nil
}

// Apply overwrites bindings in table with those in f. Unknown actions,
// unparsable keys and a key left on two actions are errors.
func Apply(table *hotkey.Table, f *File) error {
	var problems []string
	for _, name := range sortedKeys(f.Hotkeys) {
		b, ok := table.Get(hotkey.Action(name))
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown action %q", name))
			continue
		}
		h, err := hotkey.Parse(f.Hotkeys[name])
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		b.Keyboard = h
	}
	holders := make(map[uint32]hotkey.Action)
	for _, b := range table.All() {
		raw := b.Keyboard.Raw()
		if raw == 0 {
			continue
		}
		if first, ok := holders[raw]; ok {
			problems = append(problems, fmt.Sprintf("%s is bound to both %s and %s", b.Keyboard, first, b.Action))
			continue
		}
		holders[raw] = b.Action
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Encode converts a table to its file form.
func Encode(table *hotkey.Table) *File {
	f := &File{
		Version: FileVersion,
		Hotkeys: make(map[string]string, table.Len()),
	}
	for _, b := range table.All() {
		f.Hotkeys[string(b.Action)] = b.Keyboard.String()
	}
	return f
}

// Save writes table to the file, creating parent directories.
func (m *Manager) Save(table *hotkey.Table) error {
	return m.WriteFile(Encode(table))
}

// WriteFile writes f to the manager's path.
func (m *Manager) WriteFile(f *File) error {
	data, err := Marshal(m.path, f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", m.path, err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write hotkeys file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace hotkeys file: %w", err)
	}
	return nil
}

// Marshal encodes f for the format implied by name.
func Marshal(name string, f *File) ([]byte, error) {
	if isYAML(name) {
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hotkeys: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hotkeys: %w", err)
	}
	return append(data, '\n'), nil
}

// CreateExampleConfig writes the default bindings to path.
func CreateExampleConfig(path string) error {
	return NewManager(path).Save(hotkey.DefaultTable())
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
