package filter

import (
	"strings"
	"testing"
)

const doc = `[
  {"action": "toggle_fullscreen", "key": "F11", "modified": false},
  {"action": "take_screenshot", "key": "F9", "modified": true}
]`

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		query   string
		want    string
		wantErr bool
	}{
		{
			name: "no expressions returns input",
			want: doc,
		},
		{
			name:   "filter",
			filter: "[?modified].action",
			want:   "[\n  \"take_screenshot\"\n]",
		},
		{
			name:  "query",
			query: "[0].key",
			want:  `"F11"`,
		},
		{
			name:   "filter then query",
			filter: "[?modified]",
			query:  "[].key",
			want:   "[\n  \"F9\"\n]",
		},
		{
			name:  "null result",
			query: "[5]",
			want:  "null",
		},
		{
			name:    "bad expression",
			filter:  "[?",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply([]byte(doc), tt.filter, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApply_ShellQuery(t *testing.T) {
	got, err := Apply([]byte(doc), "", "$(wc -l)")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if strings.TrimSpace(string(got)) != "3" {
		t.Errorf("Apply() = %q, want 3", got)
	}
}

func TestIsShellCommand(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"$(jq .)", true},
		{"[].action", false},
		{"$(", false},
	}

	for _, tt := range tests {
		if got := IsShellCommand(tt.query); got != tt.want {
			t.Errorf("IsShellCommand(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIsValidJMESPath(t *testing.T) {
	if !IsValidJMESPath("[?modified].action") {
		t.Error("expected valid expression")
	}
	if IsValidJMESPath("[?") {
		t.Error("expected invalid expression")
	}
}
