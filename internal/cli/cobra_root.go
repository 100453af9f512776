package cli

import (
	"context"
	"time"

	"pomo/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	appOpts []AppOption
}

// NewRootCommand creates the root cobra command with global flags. Configuration
// is loaded when a command runs, after flags are parsed.
func NewRootCommand(opts ...AppOption) *RootCommand {
	root := &RootCommand{appOpts: opts}

	root.cmd = &cobra.Command{
		Use:   "pomo [title]",
		Short: "A terminal pomodoro timer",
		Long: `pomo runs work and break countdowns in your terminal and logs every
completed work session to a CSV file.

Each cycle shows the previous session title and gives you a few seconds to
change it, counts down the work interval, alerts you, appends the session to
the log and counts down the break. Press p to pause or resume, Ctrl+C to quit.

EXAMPLES:
  pomo                                     # Start with the last title from the log
  pomo "Writing project notes"             # Start with a new title
  pomo --work 50 --break 10                # Longer sessions
  pomo history 1w                          # Sessions from the last week
  pomo stats 1mo "notes"                   # Totals for matching titles this month
  pomo export --format json > sessions.json

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    POMO_WORK_MINUTES                      Work interval in minutes (default: 25)
    POMO_BREAK_MINUTES                     Break interval in minutes (default: 5)
    POMO_LONG_BREAK_MINUTES                Long break in minutes (default: 15)
    POMO_LONG_BREAK_EVERY                  Long break after every N sessions (default: 0, off)
    POMO_PROMPT_TIMEOUT                    Title prompt wait (default: 5s)
    POMO_DEFAULT_TITLE                     Title used when the log is empty (default: Pomodoro)
    POMO_TITLE_MAX_LENGTH                  Maximum title length (default: 200)
    POMO_LOG_DIR                           Log directory (default: ~/.pomo)
    POMO_LOG_FILENAME                      Log filename (default: pomo_log.csv)
    POMO_NOTIFY                            Desktop notifications (default: true)
    POMO_SOUND                             Completion sound (default: true)
    POMO_PLAIN                             Line-based display (default: false)
    POMO_TIME_DISPLAY_FORMAT               Time format (default: 2006-01-02 15:04)
    POMO_APP_TIMEOUT                       Report command timeout (default: 30s)
    POMO_APP_VERBOSE                       Verbose output (default: false)
    POMO_DEBUG                             Debug logging (default: off)

TIME FORMATS:
  Use these shorthand formats for time filtering:
    30m, 2h, 1d, 2w, 3mo, 1y              # Minutes, hours, days, weeks, months, years`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewRunCommand(root.app).Execute(cmd.Context(), args)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments parsed by Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// App returns the application built for the last command run
func (r *RootCommand) App() *App {
	return r.app
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Timer configuration
	flags.Int("work", 0, "Work interval in minutes (overrides POMO_WORK_MINUTES)")
	flags.Int("break", 0, "Break interval in minutes (overrides POMO_BREAK_MINUTES)")
	flags.Int("long-break", 0, "Long break in minutes (overrides POMO_LONG_BREAK_MINUTES)")
	flags.Int("long-break-every", 0, "Take a long break after every N sessions, 0 disables (overrides POMO_LONG_BREAK_EVERY)")
	flags.Duration("time-unit", 0, "Length of one minute (overrides POMO_TIME_UNIT)")
	flags.Duration("tick", 0, "Display refresh interval (overrides POMO_TICK_INTERVAL)")
	_ = flags.MarkHidden("time-unit")
	_ = flags.MarkHidden("tick")

	// Prompt configuration
	flags.Duration("prompt-timeout", 0, "Title prompt wait (overrides POMO_PROMPT_TIMEOUT)")
	flags.String("default-title", "", "Title used when the log is empty (overrides POMO_DEFAULT_TITLE)")

	// Log configuration
	flags.String("log-dir", "", "Log directory (overrides POMO_LOG_DIR)")
	flags.String("log-file", "", "Log filename (overrides POMO_LOG_FILENAME)")

	// Notification configuration
	flags.Bool("no-notify", false, "Disable desktop notifications (overrides POMO_NOTIFY)")
	flags.Bool("no-sound", false, "Disable the completion sound (overrides POMO_SOUND)")

	// Display configuration
	flags.Bool("plain", false, "Use the line-based display (overrides POMO_PLAIN)")
	flags.String("time-format", "", "Time display format (overrides POMO_TIME_DISPLAY_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Report command timeout (overrides POMO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides POMO_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// History command
	var limit int
	historyCmd := &cobra.Command{
		Use:   "history [time] [text]",
		Short: "List completed sessions",
		Long: `List completed work sessions, newest first.

Time filters support: 30m, 2h, 1d, 2w, 3mo, 1y
Text filters search within session titles (case-insensitive partial matching)

Examples:
  pomo history                   # All sessions
  pomo history 1d                # Sessions from the last day
  pomo history 1w "notes"        # Sessions from the last week containing "notes"
  pomo history -n 10             # The ten most recent sessions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewHistoryCommand(r.app, limit).Execute(ctx, args)
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N sessions (0 for all)")

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats [time] [text]",
		Short: "Show session totals",
		Long: `Show totals per title and per day, and the current run of consecutive days.

Time filters support: 30m, 2h, 1d, 2w, 3mo, 1y
Text filters search within session titles

Examples:
  pomo stats                     # All sessions
  pomo stats 1w                  # Last week
  pomo stats "project"           # Sessions whose title contains "project"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewStatsCommand(r.app).Execute(ctx, args)
		},
	}

	// Export command
	var format string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the session log",
		Long: `Write every logged session to stdout.

Supported formats:
  csv  - the log's own columns: title,minutes,datetime
  json - an array of objects
  yaml - a list of mappings

Example:
  pomo export --format yaml > sessions.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewExportCommand(r.app, format).Execute(ctx, args)
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", FormatCSV, "Output format: csv, json or yaml")

	r.cmd.AddCommand(historyCmd, statsCmd, exportCmd)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app != nil && r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 30 * time.Second
}

// loadConfig layers flags over the environment and builds the app
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	cfg, err := config.NewLoader().LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return err
	}
	r.app = NewApp(cfg, r.appOpts...)
	return nil
}

// overridesFromFlags collects the flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	// Timer configuration
	o.WorkMinutes = changedInt(flags, "work")
	o.BreakMinutes = changedInt(flags, "break")
	o.LongBreakMinutes = changedInt(flags, "long-break")
	o.LongBreakEvery = changedInt(flags, "long-break-every")
	o.Unit = changedDuration(flags, "time-unit")
	o.TickInterval = changedDuration(flags, "tick")

	// Prompt configuration
	o.PromptTimeout = changedDuration(flags, "prompt-timeout")
	o.DefaultTitle = changedString(flags, "default-title")

	// Log configuration
	o.LogDir = changedString(flags, "log-dir")
	o.LogFilename = changedString(flags, "log-file")

	// Notification configuration
	if off := changedBool(flags, "no-notify"); off != nil {
		on := !*off
		o.NotifyEnabled = &on
	}
	if off := changedBool(flags, "no-sound"); off != nil {
		on := !*off
		o.SoundEnabled = &on
	}

	// Display configuration
	o.Plain = changedBool(flags, "plain")
	o.TimeFormat = changedString(flags, "time-format")

	// Application configuration
	o.Timeout = changedDuration(flags, "app-timeout")
	o.Verbose = changedBool(flags, "verbose")

	return o
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedDuration(flags *pflag.FlagSet, name string) *time.Duration {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetDuration(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
