package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's settings screen keybinding overrides.
// Each section maps an action to a comma-separated list of keys.
type Config struct {
	Version  string            `json:"version"`
	Global   map[string]string `json:"global,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
	History  map[string]string `json:"history,omitempty"`
	Help     map[string]string `json:"help,omitempty"`
	Confirm  map[string]string `json:"confirm,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry
// An action listed in a section loses its default keys in that section
func ApplyConfig(registry *Registry, config *Config) error {
	contextMappings := map[Context]map[string]string{
		ContextGlobal:   config.Global,
		ContextSettings: config.Settings,
		ContextHistory:  config.History,
		ContextHelp:     config.Help,
		ContextConfirm:  config.Confirm,
	}

	for context, bindings := range contextMappings {
		for actionStr, keys := range bindings {
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			action := Action(actionStr)
			registry.Unregister(context, action)
			for _, key := range strings.Split(keys, ",") {
				key = strings.TrimSpace(key)
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
				registry.Register(context, key, action)
				if key == "space" {
					registry.Register(context, " ", action)
				}
			}
		}
	}

	return nil
}

// ExportConfig converts a registry into the override file form, listing
// every action with all of its keys
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	sections := map[Context]*map[string]string{
		ContextGlobal:   &config.Global,
		ContextSettings: &config.Settings,
		ContextHistory:  &config.History,
		ContextHelp:     &config.Help,
		ContextConfirm:  &config.Confirm,
	}

	for context, section := range sections {
		for key, action := range registry.bindings[context] {
			if key == " " {
				// written as "space", which ApplyConfig expands
				continue
			}
			if *section == nil {
				*section = make(map[string]string)
			}
			if existing := (*section)[string(action)]; existing != "" {
				keys := append(strings.Split(existing, ", "), key)
				sort.Strings(keys)
				(*section)[string(action)] = strings.Join(keys, ", ")
			} else {
				(*section)[string(action)] = key
			}
		}
	}

	return config
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if result := NewValidator().ValidateConfig(config); result.HasErrors() {
			return nil, fmt.Errorf("invalid keybinds.json: %s", result.Errors[0].Message)
		}
		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}
