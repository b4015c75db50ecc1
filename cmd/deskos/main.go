// Package main implements deskos, a desktop shell for the terminal. It
// draws overlapping windows with a dock, tiling, and a stage-manager mode,
// and can serve the same desktop over SSH.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/fang"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
	themeName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskos",
		Short: "A desktop shell for the terminal",
		Long: `deskos is a desktop shell that runs in your terminal.

Windows float, tile, minimize to a dock, and stack like a desktop. A
stage-manager mode keeps one window centered with the rest parked in a
thumbnail strip.`,
		Example: `  # Run the desktop
  deskos

  # Run with a theme
  deskos --theme dracula

  # Serve the desktop over SSH
  deskos ssh --port 2222

  # Edit configuration
  deskos config edit`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Theme name (overrides config)")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the desktop over SSH",
		Long: `Serve the desktop over SSH.

Each connection gets its own desktop. A host key is generated
automatically if none is specified.`,
		Example: `  # Start SSH server on default port
  deskos ssh

  # Start on custom port
  deskos ssh --port 2222`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskos configuration",
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the deskos configuration file in your default editor.

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the deskos configuration file to default settings.

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listThemes()
		},
	}

	rootCmd.AddCommand(sshCmd, configCmd, keybindsCmd, themesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func printConfigPath() error {
	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	configPath, err := config.Path()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.DefaultConfig().Save(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resetConfigToDefaults() error {
	configPath, err := config.Path()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	var sb strings.Builder
	sb.WriteString("# deskos configuration file\n")
	sb.WriteString("# Keybindings map action names to arrays of key chords.\n")
	sb.WriteString("# Multiple keys can be bound to the same action.\n\n")

	data, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: deskos config edit")
	return nil
}

// keybindSections groups actions for the CLI listing. Mirrors the in-shell
// help overlay.
var keybindSections = []struct {
	Title   string
	Actions [][2]string // action name, description
}{
	{
		Title: "Windows",
		Actions: [][2]string{
			{config.ActionNewWindow, "Open a window"},
			{config.ActionCloseWindow, "Close the active window"},
			{config.ActionRenameWindow, "Rename the active window"},
			{config.ActionNextWindow, "Focus next window"},
			{config.ActionPrevWindow, "Focus previous window"},
			{config.ActionMinimizeWindow, "Minimize to the dock"},
			{config.ActionMaximizeWindow, "Maximize / restore"},
			{config.ActionFullscreen, "Toggle fullscreen"},
		},
	},
	{
		Title: "Layout",
		Actions: [][2]string{
			{config.ActionTileToggle, "Tile all windows"},
			{config.ActionStageManager, "Toggle stage manager"},
			{config.ActionToggleDock, "Show / hide the dock"},
		},
	},
	{
		Title: "Modes",
		Actions: [][2]string{
			{config.ActionEnterAppMode, "Send keys to the focused app"},
			{config.ActionLeaveAppMode, "Return to the desktop"},
			{config.ActionToggleHelp, "Toggle help"},
			{config.ActionToggleLogs, "Open the log viewer"},
			{config.ActionQuit, "Quit"},
		},
	},
}

func listKeybindings() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
	}
	registry := config.NewKeybindRegistry(cfg.Keybindings)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("deskos Keybindings"))
	fmt.Println()

	for _, section := range keybindSections {
		rows := [][]string{}
		for _, a := range section.Actions {
			keys := registry.KeysForDisplay(a[0])
			if keys == "" {
				continue
			}
			rows = append(rows, []string{keys, a[1]})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}

func listThemes() error {
	ids := theme.IDs()

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("Available Themes"))
	fmt.Println()
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Use with: deskos --theme <name>, or set appearance.theme in the config file."))
	return nil
}
