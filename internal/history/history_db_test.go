package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/migrations"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNewManager_RunsMigrations(t *testing.T) {
	m := newTestManager(t)

	version, err := migrations.GetCurrentVersion(m.db)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	want := migrations.AllMigrations[len(migrations.AllMigrations)-1].Version
	if version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}
	if m.SessionID() == "" {
		t.Error("expected a session id")
	}
}

func TestNewManager_ReopenKeepsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < 2; i++ {
		m, err := NewManager(path)
		if err != nil {
			t.Fatalf("NewManager() #%d error = %v", i, err)
		}
		m.Close()
	}
}

func TestRecordChange_AndRecent(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	changes := []capture.Change{
		{Action: hotkey.ActionTakeScreenshot, Old: hotkey.MustParse("F12"), New: hotkey.MustParse("ctrl+p"), Source: "tui"},
		{Action: hotkey.ActionExitFullscreen, Old: hotkey.MustParse("esc"), New: hotkey.Hotkey{}, Source: "cli"},
		{Action: hotkey.ActionTakeScreenshot, Old: hotkey.MustParse("ctrl+p"), New: hotkey.MustParse("P"), Source: "tui"},
	}
	for _, c := range changes {
		if err := m.RecordChange(c); err != nil {
			t.Fatalf("RecordChange() error = %v", err)
		}
	}

	count, err := m.GetCount()
	if err != nil {
		t.Fatalf("GetCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("GetCount() = %d, want 3", count)
	}

	recent, err := m.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(recent))
	}
	if recent[0].OldKey != "CTRL + P" || recent[0].NewKey != "P" {
		t.Errorf("newest entry = %+v", recent[0])
	}
	if recent[1].NewKey != "" || recent[1].Source != "cli" {
		t.Errorf("second entry = %+v", recent[1])
	}
	if recent[0].SessionID != m.SessionID() {
		t.Errorf("SessionID = %q, want %q", recent[0].SessionID, m.SessionID())
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Errorf("timestamps not descending: %v, %v", recent[0].Timestamp, recent[1].Timestamp)
	}

	all, err := m.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) returned %d entries, want 3", len(all))
	}

	shots, err := m.ForAction(string(hotkey.ActionTakeScreenshot))
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	if len(shots) != 2 {
		t.Errorf("ForAction() returned %d entries, want 2", len(shots))
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	if err := m.RecordChange(capture.Change{Action: hotkey.ActionTakeScreenshot}); err != nil {
		t.Fatalf("RecordChange() error = %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	count, _ := m.GetCount()
	if count != 0 {
		t.Errorf("GetCount() = %d after Clear, want 0", count)
	}
}

func TestManagerIsRecorder(t *testing.T) {
	var _ capture.Recorder = (*Manager)(nil)
}
