package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings(t *testing.T) {
	t.Setenv("HOTKEYCTL_HOME", "/tmp/hk")
	t.Setenv("HOTKEYCTL_LOG_LEVEL", "debug")
	t.Setenv("HOTKEYCTL_NO_HISTORY", "true")
	t.Setenv("HOTKEYCTL_FULLSCREEN", "1")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Home != "/tmp/hk" {
		t.Errorf("Home = %q, want /tmp/hk", s.Home)
	}
	if !s.NoHistory {
		t.Error("NoHistory = false, want true")
	}
	if !s.Fullscreen {
		t.Error("Fullscreen = false, want true")
	}
	if s.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", s.Level())
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("HOTKEYCTL_LOG_LEVEL", "")
	os.Unsetenv("HOTKEYCTL_LOG_LEVEL")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
	if s.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", s.Level())
	}
}

func TestInitializeWith(t *testing.T) {
	home := filepath.Join(t.TempDir(), "cfg")

	if err := InitializeWith(Settings{Home: home}); err != nil {
		t.Fatalf("InitializeWith() error = %v", err)
	}
	if _, err := os.Stat(home); err != nil {
		t.Errorf("config dir not created: %v", err)
	}
	if HotkeysFile != filepath.Join(home, "hotkeys.json") {
		t.Errorf("HotkeysFile = %q", HotkeysFile)
	}
	if DatabasePath != filepath.Join(home, "history.db") {
		t.Errorf("DatabasePath = %q", DatabasePath)
	}
}

func TestGetHotkeysFilePath(t *testing.T) {
	home := t.TempDir()
	if err := InitializeWith(Settings{Home: home}); err != nil {
		t.Fatalf("InitializeWith() error = %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}

	if got := GetHotkeysFilePath(); got != HotkeysFile {
		t.Errorf("GetHotkeysFilePath() = %q, want global %q", got, HotkeysFile)
	}

	if err := os.WriteFile(LocalHotkeysFile, []byte("{}"), FilePermissions); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := GetHotkeysFilePath(); got != LocalHotkeysFile {
		t.Errorf("GetHotkeysFilePath() = %q, want local %q", got, LocalHotkeysFile)
	}

	override := filepath.Join(home, "custom.yaml")
	if err := InitializeWith(Settings{Home: home, HotkeysFile: override}); err != nil {
		t.Fatalf("InitializeWith() error = %v", err)
	}
	if got := GetHotkeysFilePath(); got != override {
		t.Errorf("GetHotkeysFilePath() = %q, want override %q", got, override)
	}
}
