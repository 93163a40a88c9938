package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/wmdialog/internal/audio"
	"github.com/jmylchreest/wmdialog/internal/config"
	"github.com/jmylchreest/wmdialog/internal/dbus"
	"github.com/jmylchreest/wmdialog/internal/dismiss"
	"github.com/jmylchreest/wmdialog/internal/display"
	"github.com/jmylchreest/wmdialog/internal/display/tty"
	"github.com/jmylchreest/wmdialog/internal/display/x11"
	"github.com/jmylchreest/wmdialog/internal/layout"
	"github.com/jmylchreest/wmdialog/internal/message"
	"github.com/jmylchreest/wmdialog/internal/model"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// showOptions are the flags of the root command. Each one overrides the
// config file only when given on the command line.
type showOptions struct {
	font       string
	foreground string
	background string
	border     string
	hspace     int
	vspace     int
	timeout    int // seconds
	maxLines   int
	backend    string
	display    string
	dismissOn  string
	sound      string
	noDBus     bool
}

var showOpts showOptions

// rootCmd shows a dialog when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "wmdialog [flags] <message>",
	Short: "Show a small notification window in the bottom-right corner",
	Long: `wmdialog shows a borderless, always-on-top window containing one or more
lines of text in the bottom-right corner of the screen. A click anywhere on the
window dismisses it, as does the optional timeout.

The message is the last argument. Lines are separated by a newline or by the
two characters \n. Long flags may be written with one dash for compatibility:

  wmdialog -fg '#ffffff' -bg '#005577' -to 5 'build finished\nall green'

A message that starts with a dash, or that is exactly the name of a
subcommand, must follow "--".`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              runShow,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("wmdialog {{.Version}}\n")

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalOpts.verbose, "verbose", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/wmdialog/config.toml)")

	addShowFlags(rootCmd.Flags(), &showOpts)
}

// addShowFlags registers the dialog flags on fs.
func addShowFlags(fs *pflag.FlagSet, o *showOptions) {
	fs.StringVar(&o.font, "fn", "", "Font name (X logical font description)")
	fs.StringVar(&o.foreground, "fg", "", "Text colour")
	fs.StringVar(&o.background, "bg", "", "Background colour")
	fs.StringVar(&o.border, "br", "", "Border colour")
	fs.IntVar(&o.hspace, "hs", 0, "Horizontal spacing around the text")
	fs.IntVar(&o.vspace, "vs", 0, "Vertical spacing around the text")
	fs.IntVar(&o.timeout, "to", 0, "Dismiss after this many seconds (0 waits for a click)")
	fs.IntVar(&o.maxLines, "max-lines", 0, "Maximum number of lines; the rest folds into the last one")
	fs.StringVar(&o.backend, "backend", "", "Display backend (x11, tty)")
	fs.StringVar(&o.display, "display", "", "X display to connect to (default: $DISPLAY)")
	fs.StringVar(&o.dismissOn, "dismiss-on", "", "Dismiss when this file is created, written or removed")
	fs.StringVar(&o.sound, "sound", "", "Sound file to play when the dialog appears (wav, ogg, mp3)")
	fs.BoolVar(&o.noDBus, "no-dbus", false, "Do not register the dialog on the session bus")
}

// loadConfig configures logging and loads the config file.
func loadConfig(cmd *cobra.Command, args []string) error {
	setupLogger()

	var err error
	cfg, err = config.LoadConfig(globalOpts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyOverrides copies every flag set on the command line into c. Spacing
// flags apply to the spacing of the selected backend.
func applyOverrides(fs *pflag.FlagSet, o showOptions, c *config.Config) {
	if fs.Changed("backend") {
		c.Behavior.Backend = o.backend
	}
	if fs.Changed("display") {
		c.Behavior.Display = o.display
	}
	if fs.Changed("fn") {
		c.Style.Font = o.font
	}
	if fs.Changed("fg") {
		c.Style.Foreground = o.foreground
	}
	if fs.Changed("bg") {
		c.Style.Background = o.background
	}
	if fs.Changed("br") {
		c.Style.Border = o.border
	}

	spacing := &c.Spacing
	if c.Behavior.Backend == string(config.BackendTTY) {
		spacing = &c.TTY
	}
	if fs.Changed("hs") {
		spacing.Horizontal = o.hspace
	}
	if fs.Changed("vs") {
		spacing.Vertical = o.vspace
	}

	if fs.Changed("to") {
		c.Behavior.Timeout = config.Duration(time.Duration(o.timeout) * time.Second)
	}
	if fs.Changed("max-lines") {
		c.Behavior.MaxLines = o.maxLines
	}
	if fs.Changed("sound") {
		c.Audio.Sound = o.sound
	}
	if fs.Changed("no-dbus") {
		c.DBus.Enabled = !o.noDBus
	}
}

// newService returns the display backend selected by c and the spacing it
// lays the dialog out with.
func newService(c *config.Config) (display.Service, layout.Spacing) {
	if c.Behavior.Backend == string(config.BackendTTY) {
		return tty.New(tty.Options{Logger: logger}),
			layout.Spacing{Horizontal: c.TTY.Horizontal, Vertical: c.TTY.Vertical}
	}
	return x11.New(c.Behavior.Display, logger),
		layout.Spacing{Horizontal: c.Spacing.Horizontal, Vertical: c.Spacing.Vertical}
}

func runShow(cmd *cobra.Command, args []string) error {
	applyOverrides(cmd.Flags(), showOpts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Past this point errors are about the display, not usage.
	cmd.SilenceUsage = true

	lines := message.Split(args[len(args)-1], cfg.Behavior.MaxLines)
	timeout := cfg.Behavior.Timeout.Duration()

	var trigger *dismiss.FileTrigger
	if showOpts.dismissOn != "" {
		var err error
		trigger, err = dismiss.NewFileTrigger(showOpts.dismissOn, logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", showOpts.dismissOn, err)
		}
		defer func() { _ = trigger.Stop() }()
	}

	svc, spacing := newService(cfg)
	style := display.Style{
		Font:       cfg.Style.Font,
		Foreground: cfg.Style.Foreground,
		Background: cfg.Style.Background,
		Border:     cfg.Style.Border,
	}
	dialog := display.NewDialog(svc, lines, style, spacing, logger)
	if err := dialog.Setup(); err != nil {
		// Release whatever was created before the failure.
		_ = dialog.Close()
		return err
	}

	ctrl := dismiss.NewController(func(dismiss.Reason) error {
		return dialog.Close()
	}, logger)

	if trigger != nil {
		if err := trigger.Start(func() { ctrl.Dismiss(dismiss.ReasonWatch) }); err != nil {
			_ = dialog.Close()
			return fmt.Errorf("failed to watch %s: %w", trigger.Path(), err)
		}
	}

	info, err := model.NewDialog(os.Getpid(), lines, timeout)
	if err != nil {
		logger.Warn("failed to create dialog id", "error", err)
	} else if cfg.DBus.Enabled {
		startBus(ctrl, *info)
	}

	if path := cfg.SoundPath(); path != "" {
		player := audio.NewPlayer(cfg.Audio.Volume, logger)
		if err := player.Play(path); err != nil {
			logger.Warn("failed to play sound", "path", path, "error", err)
		}
		ctrl.OnDismiss(func(dismiss.Reason) { player.Close() })
	}

	stopSignals := dismiss.DismissOnSignal(cmd.Context(), ctrl)
	defer stopSignals()

	ctrl.Start(timeout)

	dismissFromRun(ctrl, dialog.Run())

	// Teardown errors were already logged; the dismissal itself succeeded.
	reason, _ := ctrl.Wait(context.Background())
	logger.Debug("dialog dismissed", "reason", reason)
	return nil
}

// dismissFromRun turns the way the event loop ended into a dismissal.
func dismissFromRun(ctrl *dismiss.Controller, err error) {
	switch {
	case err == nil:
		ctrl.Dismiss(dismiss.ReasonClick)
	case errors.Is(err, display.ErrClosed):
		// Another trigger won and closed the display.
	case errors.Is(err, display.ErrInterrupted):
		ctrl.Dismiss(dismiss.ReasonSignal)
	default:
		logger.Warn("event loop failed", "error", err)
		ctrl.Dismiss(dismiss.ReasonError)
	}
}

// startBus registers the dialog on the session bus. Failure is not fatal.
func startBus(ctrl *dismiss.Controller, info model.Dialog) {
	srv := dbus.NewServer(info, func() { ctrl.Dismiss(dismiss.ReasonRemote) }, logger)
	if err := srv.Start(); err != nil {
		logger.Warn("D-Bus unavailable, dialog will not be listed", "error", err)
		return
	}
	ctrl.OnDismiss(func(reason dismiss.Reason) {
		if err := srv.EmitDismissed(reason.String()); err != nil {
			logger.Warn("failed to emit Dismissed signal", "error", err)
		}
		if err := srv.Stop(); err != nil {
			logger.Debug("failed to stop D-Bus server", "error", err)
		}
	})
}
