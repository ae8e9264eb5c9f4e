package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/config"
	"github.com/studiowebux/hotkeyctl/internal/filter"
	"github.com/studiowebux/hotkeyctl/internal/history"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
	"github.com/studiowebux/hotkeyctl/internal/store"
	"gopkg.in/yaml.v3"
)

// Env holds what the commands work against
type Env struct {
	Store    *store.Manager
	Keybinds *keybinds.Registry
	History  *history.Manager // nil when history is disabled
	Out      io.Writer
	Err      io.Writer
	Logger   *slog.Logger

	// Pick chooses an action when none was given; nil means one is required
	Pick func(table *hotkey.Table, title string) (hotkey.Action, error)
}

func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Row is one binding as printed by list
type Row struct {
	Action   string `json:"action" yaml:"action"`
	Label    string `json:"label" yaml:"label"`
	Key      string `json:"key" yaml:"key"`
	Default  string `json:"default" yaml:"default"`
	Modified bool   `json:"modified" yaml:"modified"`
}

// ListOptions contains options for the list command
type ListOptions struct {
	Query        string // fuzzy matched against label and action
	OutputFormat string // text, json, yaml
	Filter       string // JMESPath filter expression
	Select       string // JMESPath query or $(shell command)
}

// List prints the current bindings
func List(env Env, opts ListOptions) error {
	table, err := env.Store.Load()
	if err != nil {
		return err
	}

	rows := buildRows(table)
	if opts.Query != "" {
		rows = matchRows(rows, opts.Query)
	}

	if opts.Filter != "" || opts.Select != "" {
		data, err := json.Marshal(rows)
		if err != nil {
			return err
		}
		result, err := filter.Apply(data, opts.Filter, opts.Select)
		if err != nil {
			return err
		}
		return writeFiltered(env.Out, result, opts.OutputFormat)
	}

	output, err := formatRows(rows, opts.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(env.Out, output)
	return nil
}

func buildRows(table *hotkey.Table) []Row {
	defaults := hotkey.DefaultTable()
	rows := make([]Row, 0, table.Len())
	for _, b := range table.All() {
		row := Row{
			Action: string(b.Action),
			Label:  b.Label,
			Key:    b.Keyboard.String(),
		}
		if d, ok := defaults.Get(b.Action); ok {
			row.Default = d.Keyboard.String()
			row.Modified = d.Keyboard.Raw() != b.Keyboard.Raw()
		}
		rows = append(rows, row)
	}
	return rows
}

// matchRows keeps rows fuzzy matching query, best match first
func matchRows(rows []Row, query string) []Row {
	haystack := make([]string, len(rows))
	for i, r := range rows {
		haystack[i] = r.Label + " " + r.Action
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]Row, 0, len(matches))
	for _, m := range matches {
		out = append(out, rows[m.Index])
	}
	return out
}

func formatRows(rows []Row, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "", "text":
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%-20s %-26s %s\n", "ACTION", "LABEL", "KEY"))
		for _, r := range rows {
			key := r.Key
			if key == "" {
				key = "unbound"
			}
			if r.Modified {
				key += fmt.Sprintf("  (default: %s)", orUnbound(r.Default))
			}
			sb.WriteString(fmt.Sprintf("%-20s %-26s %s\n", r.Action, r.Label, key))
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

// writeFiltered prints a JMESPath result, converting it for yaml output
func writeFiltered(w io.Writer, result []byte, format string) error {
	if format == "yaml" {
		var data any
		if err := json.Unmarshal(result, &data); err == nil {
			out, err := yaml.Marshal(data)
			if err != nil {
				return err
			}
			_, err = w.Write(out)
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", result)
	return err
}

// Set binds key to action through the capture controller, so the same
// conflict rules as the settings screen apply
func Set(env Env, action, key string) error {
	h, err := hotkey.Parse(key)
	if err != nil {
		return err
	}

	return edit(env, action, "Select the action to rebind", func(c *capture.Controller, a hotkey.Action) (string, error) {
		outcome, err := c.Set(a, h)
		if err != nil {
			return "", err
		}
		switch outcome {
		case capture.OutcomeRejected:
			return "", fmt.Errorf("%s cannot be used as a hotkey", h)
		case capture.OutcomeConflict:
			holder, _ := c.Registry().Lookup(h)
			return "", fmt.Errorf("%s is already used by %s", h, c.Table().MustGet(holder).Label)
		case capture.OutcomeUnchanged:
			return fmt.Sprintf("%s is already bound to %s", a, h), nil
		}
		return fmt.Sprintf("%s bound to %s", a, h), nil
	})
}

// Clear unbinds action
func Clear(env Env, action string) error {
	return edit(env, action, "Select the action to clear", func(c *capture.Controller, a hotkey.Action) (string, error) {
		outcome, err := c.SecondaryClick(a)
		if err != nil {
			return "", err
		}
		if outcome == capture.OutcomeUnchanged {
			return fmt.Sprintf("%s is already unbound", a), nil
		}
		return fmt.Sprintf("%s cleared", a), nil
	})
}

// Reset restores the default key of action, or of every action when all is set
func Reset(env Env, action string, all bool) error {
	defaults := hotkey.DefaultTable()

	if all {
		table, err := env.Store.Load()
		if err != nil {
			return err
		}
		c := newController(env, table)
		var changed []*hotkey.Binding
		for _, d := range defaults.All() {
			if b, ok := table.Get(d.Action); ok && b.Keyboard.Raw() != d.Keyboard.Raw() {
				changed = append(changed, d)
			}
		}
		// clear first so a default never collides with a moved binding
		for _, d := range changed {
			if _, err := c.SecondaryClick(d.Action); err != nil {
				return err
			}
		}
		for _, d := range changed {
			if d.Keyboard.IsZero() {
				continue
			}
			if _, err := c.Assign(d.Action, d.Keyboard); err != nil {
				return err
			}
		}
		return finish(env, c, fmt.Sprintf("%d hotkey(s) reset to defaults", len(changed)))
	}

	return edit(env, action, "Select the action to reset", func(c *capture.Controller, a hotkey.Action) (string, error) {
		d, ok := defaults.Get(a)
		if !ok {
			return "", fmt.Errorf("%w: %s", hotkey.ErrUnknownAction, a)
		}
		outcome, err := c.Assign(a, d.Keyboard)
		if err != nil {
			return "", err
		}
		if outcome == capture.OutcomeConflict {
			holder, _ := c.Registry().Lookup(d.Keyboard)
			return "", fmt.Errorf("default %s is now used by %s", d.Keyboard, c.Table().MustGet(holder).Label)
		}
		return fmt.Sprintf("%s reset to %s", a, orUnbound(d.Keyboard.String())), nil
	})
}

// edit loads the table, runs apply for the resolved action and saves
func edit(env Env, action, title string, apply func(*capture.Controller, hotkey.Action) (string, error)) error {
	table, err := env.Store.Load()
	if err != nil {
		return err
	}

	a := hotkey.Action(action)
	if action == "" {
		if env.Pick == nil {
			return fmt.Errorf("no action given")
		}
		a, err = env.Pick(table, title)
		if err != nil {
			return err
		}
	}

	c := newController(env, table)
	msg, err := apply(c, a)
	if err != nil {
		return err
	}
	return finish(env, c, msg)
}

func newController(env Env, table *hotkey.Table) *capture.Controller {
	registry := hotkey.NewRegistry()
	registry.Load(table)

	opts := []capture.Option{
		capture.WithLogger(env.logger()),
		capture.WithSource("cli"),
	}
	if env.History != nil {
		opts = append(opts, capture.WithRecorder(env.History))
	}
	return capture.New(table, registry, opts...)
}

// finish saves pending changes and reports msg plus any warnings
func finish(env Env, c *capture.Controller, msg string) error {
	if c.Dirty() {
		if err := env.Store.Save(c.Table()); err != nil {
			return fmt.Errorf("failed to save hotkeys: %w", err)
		}
		c.MarkSaved()
	}
	fmt.Fprintln(env.Out, msg)

	result := validator(env).ValidateTable(c.Table())
	for _, w := range result.Warnings {
		fmt.Fprintf(env.Err, "Warning: %s\n", w.Error())
	}
	return nil
}

func validator(env Env) *store.Validator {
	kb := env.Keybinds
	if kb == nil {
		kb = keybinds.NewDefaultRegistry()
	}
	return store.NewValidator(kb.ReservedHotkeys(keybinds.ContextSettings))
}

// Validate checks the hotkey file and the settings screen keybindings.
// It fails when either has errors.
func Validate(env Env) error {
	failed := false

	f, err := env.Store.ReadFile()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(env.Out, "%s: not found, defaults in use\n", env.Store.Path())
	case err != nil:
		return err
	default:
		result := validator(env).ValidateFile(f)
		fmt.Fprintf(env.Out, "%s:\n%s\n", env.Store.Path(), strings.TrimRight(result.String(), "\n"))
		failed = result.HasErrors()
	}

	if env.Keybinds != nil {
		result := keybinds.NewValidator().ValidateRegistry(env.Keybinds)
		fmt.Fprintf(env.Out, "%s:\n%s\n", config.KeybindsFile, strings.TrimRight(result.String(), "\n"))
		failed = failed || result.HasErrors()
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// HistoryOptions contains options for the history command
type HistoryOptions struct {
	Limit        int
	Action       string
	OutputFormat string
	Clear        bool
}

// History prints recorded binding changes, newest first. With Clear set
// it deletes them instead.
func History(env Env, opts HistoryOptions) error {
	if env.History == nil {
		return fmt.Errorf("history is disabled")
	}

	total, err := env.History.GetCount()
	if err != nil {
		return err
	}
	if opts.Clear {
		if opts.Action != "" {
			return fmt.Errorf("--clear removes every change and takes no action")
		}
		if err := env.History.Clear(); err != nil {
			return err
		}
		env.Logger.Info("history cleared", "changes", total)
		fmt.Fprintf(env.Out, "Cleared %d change(s)\n", total)
		return nil
	}

	var entries []history.Entry
	if opts.Action != "" {
		entries, err = env.History.ForAction(opts.Action)
		if opts.Limit > 0 && len(entries) > opts.Limit {
			entries = entries[:opts.Limit]
		}
	} else {
		entries, err = env.History.Recent(opts.Limit)
	}
	if err != nil {
		return err
	}

	switch opts.OutputFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Out, string(data))
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		fmt.Fprint(env.Out, string(data))
	case "", "text":
		if len(entries) == 0 {
			fmt.Fprintln(env.Out, "No changes recorded")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(env.Out, "%s  %-4s %-20s %s -> %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Source, e.Action,
				orUnbound(e.OldKey), orUnbound(e.NewKey))
		}
		if opts.Action == "" && len(entries) < total {
			fmt.Fprintf(env.Out, "Showing %d of %d changes\n", len(entries), total)
		}
	default:
		return fmt.Errorf("unknown output format: %s", opts.OutputFormat)
	}
	return nil
}

// Show prints the hotkey file, highlighted unless noColor is set.
// A missing file shows the defaults that are in effect.
func Show(env Env, noColor bool) error {
	path := env.Store.Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(env.Err, "%s not found, showing defaults\n", path)
		data, err = store.Marshal(path, store.Encode(hotkey.DefaultTable()))
	}
	if err != nil {
		return err
	}

	if noColor {
		_, err := env.Out.Write(data)
		return err
	}

	lexer := "json"
	if lower := strings.ToLower(path); strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		lexer = "yaml"
	}
	return quick.Highlight(env.Out, string(data), lexer, "terminal256", "monokai")
}

// InitOptions contains options for the init command
type InitOptions struct {
	Path     string
	Force    bool
	Keybinds string // also write the settings screen keybindings here when set
}

// Init writes an example hotkey file with the default bindings
func Init(out io.Writer, opts InitOptions) error {
	if err := writeNew(opts.Path, opts.Force, store.CreateExampleConfig); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", opts.Path)

	if opts.Keybinds != "" {
		save := func(path string) error {
			return keybinds.SaveConfig(keybinds.ExportConfig(keybinds.NewDefaultRegistry()), path)
		}
		if err := writeNew(opts.Keybinds, opts.Force, save); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %s\n", opts.Keybinds)
	}
	return nil
}

func writeNew(path string, force bool, write func(string) error) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return write(path)
}

func orUnbound(key string) string {
	if key == "" {
		return "unbound"
	}
	return key
}
