package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/hotkeyctl/internal/cli"
	"github.com/studiowebux/hotkeyctl/internal/config"
	"github.com/studiowebux/hotkeyctl/internal/history"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
	"github.com/studiowebux/hotkeyctl/internal/store"
	"github.com/studiowebux/hotkeyctl/internal/tui"
	"github.com/studiowebux/hotkeyctl/internal/version"
)

var (
	appVersion = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hotkeyctl",
	Short: "hotkeyctl - edit application hotkeys",
	Long: `hotkeyctl edits the hotkeys of the host application.

Run without arguments to open the settings screen. Select a binding and
press enter (or click it) to record a new key, right click or backspace
to clear it.

Examples:
  hotkeyctl                                 # Open the settings screen
  hotkeyctl list                            # Show every binding
  hotkeyctl list shot -o json               # Fuzzy match, JSON output
  hotkeyctl list --filter "[?modified]"     # JMESPath filter
  hotkeyctl set take_screenshot "CTRL + P"  # Rebind from the shell
  hotkeyctl clear exit_fullscreen           # Unbind
  hotkeyctl reset --all                     # Back to defaults
  hotkeyctl history --clear                 # Forget recorded changes
  hotkeyctl validate                        # Check hotkeys.json`,
	Version:       appVersion,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List bindings, optionally fuzzy matched",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ListOptions{
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			Select:       flagSelect,
		}
		if len(args) > 0 {
			opts.Query = args[0]
		}
		return withEnv(false, func(env cli.Env) error { return cli.List(env, opts) })
	},
}

var setCmd = &cobra.Command{
	Use:   "set [action] <key>",
	Short: "Bind a key to an action",
	Long: `Bind a key to an action. Keys use the label format ("ALT + Enter",
"CTRL + SHIFT + S", "F11") or the compact form ("alt+enter").

The same rules as the settings screen apply: a key held by another action
is refused and Esc or bare modifiers cannot be bound. Without an action an
interactive picker is shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, key := "", args[0]
		if len(args) == 2 {
			action, key = args[0], args[1]
		}
		return withEnv(true, func(env cli.Env) error { return cli.Set(env, action, key) })
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [action]",
	Short: "Unbind an action",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(true, func(env cli.Env) error { return cli.Clear(env, firstArg(args)) })
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [action]",
	Short: "Restore default bindings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAll && len(args) > 0 {
			return fmt.Errorf("--all takes no action")
		}
		return withEnv(true, func(env cli.Env) error { return cli.Reset(env, firstArg(args), flagAll) })
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the hotkey file and keybindings for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(false, cli.Validate)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [action]",
	Short: "Show recorded binding changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.HistoryOptions{
			Limit:        flagLimit,
			Action:       firstArg(args),
			OutputFormat: flagOutput,
			Clear:        flagClearHistory,
		}
		return withEnv(false, func(env cli.Env) error { return cli.History(env, opts) })
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the hotkey file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(false, func(env cli.Env) error { return cli.Show(env, flagNoColor) })
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a hotkey file with the default bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		opts := cli.InitOptions{Path: config.HotkeysFile, Force: flagForce}
		if flagLocal {
			opts.Path = config.LocalHotkeysFile
		}
		if flagKeybinds {
			opts.Keybinds = config.KeybindsFile
		}
		return cli.Init(os.Stdout, opts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("hotkeyctl %s\n", appVersion)
		if !flagCheck {
			return nil
		}
		update, err := version.NewChecker().Check(context.Background(), appVersion)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Printf("A newer version is available: %s (%s)\n", update.Latest, update.URL)
		} else {
			fmt.Println("You are running the latest version")
		}
		return nil
	},
}

// Flags
var (
	flagOutput   string
	flagFilter   string
	flagSelect   string
	flagAll      bool
	flagLimit    int
	flagNoColor  bool
	flagForce    bool
	flagLocal    bool
	flagKeybinds bool
	flagCheck    bool

	flagClearHistory bool
)

func init() {
	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	listCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter expression")
	listCmd.Flags().StringVarP(&flagSelect, "query", "q", "", "JMESPath query or $(shell command)")

	resetCmd.Flags().BoolVar(&flagAll, "all", false, "Reset every action")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of changes to show (0 for all)")
	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")
	historyCmd.Flags().BoolVar(&flagClearHistory, "clear", false, "Delete every recorded change")

	showCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable syntax highlighting")

	initCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&flagLocal, "local", false, "Write "+config.LocalHotkeysFile+" in the current directory")
	initCmd.Flags().BoolVar(&flagKeybinds, "keybinds", false, "Also write keybinds.json for the settings screen")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(initCmd)

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check for a newer release")
	rootCmd.AddCommand(versionCmd)
}

// setup initializes configuration and the stderr logger used by subcommands
func setup() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.Current.Level()}))
	slog.SetDefault(logger)
	return nil
}

// withEnv builds the command environment and runs fn with it. The action
// picker is offered only to editing commands on a terminal.
func withEnv(editing bool, fn func(cli.Env) error) error {
	if err := setup(); err != nil {
		return err
	}

	kb, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	env := cli.Env{
		Store:    store.NewManager(config.GetHotkeysFilePath()),
		Keybinds: kb,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Logger:   slog.Default(),
	}
	if editing && cli.IsInteractive() {
		env.Pick = cli.PickAction
	}

	if !config.Current.NoHistory {
		hist, err := history.NewManager(config.DatabasePath)
		if err != nil {
			slog.Warn("change history unavailable", "error", err)
		} else {
			defer hist.Close()
			env.History = hist
		}
	}

	return fn(env)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
