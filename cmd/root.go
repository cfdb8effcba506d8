package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/scribe/internal/app"
	"github.com/zjrosen/scribe/internal/clipboard"
	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/notify"
	"github.com/zjrosen/scribe/internal/paths"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "scribe [file]",
	Short: "A small terminal text editor",
	Long: `scribe opens a file in a full-screen terminal editor with undo/redo,
mouse selection, search and go-to-line. A path that does not exist yet is
created on the first save.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/scribe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by SCRIBE_DEBUG)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not watch the file for changes made by other programs")
	rootCmd.Flags().Int("tab-width", 0, "spaces inserted for Tab (overrides config)")

	_ = viper.BindPFlag("editor.tab_width", rootCmd.Flags().Lookup("tab-width"))
}

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	v.SetDefault("editor.cursor_line", defaults.Editor.CursorLine)
	v.SetDefault("editor.eof_indicator", defaults.Editor.EOFIndicator)
	v.SetDefault("editor.drag_threshold", defaults.Editor.DragThreshold)
	v.SetDefault("editor.font", defaults.Editor.Font)
	v.SetDefault("editor.font_size", defaults.Editor.FontSize)
	v.SetDefault("theme.background", defaults.Theme.Background)
	v.SetDefault("theme.foreground", defaults.Theme.Foreground)
	v.SetDefault("theme.cursor", defaults.Theme.Cursor)
	v.SetDefault("theme.selection", defaults.Theme.Selection)
	v.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .scribe/config.yaml (current directory)
		// 2. ~/.config/scribe/config.yaml (user config)
		if _, err := os.Stat(paths.ProjectConfig); err == nil {
			viper.SetConfigFile(paths.ProjectConfig)
		} else {
			if dir := paths.UserConfigDir(); dir != "" {
				viper.AddConfigPath(dir)
			}
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user default
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if dir := paths.UserConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	// Initialize logging if debug mode enabled (via flag or env var)
	if debugFlag || paths.DebugEnabled() {
		logPath := paths.LogPath()
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "scribe starting", "version", version, "logPath", logPath)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	doc, err := openDocument(args)
	if err != nil {
		return err
	}

	noWatch, _ := cmd.Flags().GetBool("no-watch")

	// Store the config file path for persisting toggled options
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		if dir := paths.UserConfigDir(); dir != "" {
			configFilePath = filepath.Join(dir, "config.yaml")
		}
	}

	broker := notify.NewBroker[notify.Status]()
	defer broker.Close()

	ed := editor.New(doc, editor.OptionsFromConfig(cfg.Editor), editor.Deps{
		Clipboard: clipboard.Auto(),
		Status:    broker,
	})

	model := app.New(ed, broker, app.Options{
		Config:     cfg,
		ConfigPath: configFilePath,
		Watch:      !noWatch,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openDocument loads the file argument. No argument gives an unnamed buffer.
func openDocument(args []string) (*document.Document, error) {
	if len(args) == 0 {
		return document.FromString(""), nil
	}
	path, err := paths.ResolveFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", args[0], err)
	}
	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	log.Info(log.CatBuffer, "Opened document", "path", path, "runes", doc.Len())
	return doc, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
