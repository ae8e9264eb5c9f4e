package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalHotkeysFile overrides the global hotkey file when present in the working directory
	LocalHotkeysFile = ".hotkeys.json"
)

var (
	// ConfigDir is the global configuration directory (~/.hotkeyctl)
	ConfigDir string

	// HotkeysFile is the hotkey configuration file
	HotkeysFile string

	// KeybindsFile holds overrides for the settings screen's own keys
	KeybindsFile string

	// DatabasePath is the SQLite database file for binding change history
	DatabasePath string

	// ScreenshotsDir receives screenshots taken by the host
	ScreenshotsDir string
)

// Settings are the environment overrides.
type Settings struct {
	Home        string `env:"HOTKEYCTL_HOME"`
	HotkeysFile string `env:"HOTKEYCTL_HOTKEYS_FILE"`
	LogLevel    string `env:"HOTKEYCTL_LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"HOTKEYCTL_LOG_FILE"`
	NoHistory   bool   `env:"HOTKEYCTL_NO_HISTORY"`
	Fullscreen  bool   `env:"HOTKEYCTL_FULLSCREEN"`
}

// Current holds the settings parsed by the last Initialize call.
var Current Settings

// LoadSettings parses the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return s, nil
}

// Initialize sets up the configuration directories
// It creates ~/.hotkeyctl/ if it doesn't exist
func Initialize() error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	return InitializeWith(settings)
}

// InitializeWith sets the global paths from s and creates the directories.
func InitializeWith(s Settings) error {
	home := s.Home
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(homeDir, ".hotkeyctl")
	}

	ConfigDir = home
	HotkeysFile = filepath.Join(ConfigDir, "hotkeys.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "history.db")
	ScreenshotsDir = filepath.Join(ConfigDir, "screenshots")
	if s.HotkeysFile != "" {
		HotkeysFile = s.HotkeysFile
	}

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	Current = s
	return nil
}

// GetHotkeysFilePath returns the hotkey file path (local or global)
func GetHotkeysFilePath() string {
	if Current.HotkeysFile != "" {
		return Current.HotkeysFile
	}
	if _, err := os.Stat(LocalHotkeysFile); err == nil {
		return LocalHotkeysFile
	}
	return HotkeysFile
}

// Level maps the configured level name to a slog level.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
