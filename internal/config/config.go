package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the pomodoro timer
type Config struct {
	Timer       TimerConfig
	Prompt      PromptConfig
	Log         LogConfig
	Notify      NotifyConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// TimerConfig holds the interval lengths. Durations are counted in Unit, which is
// one minute outside of tests.
type TimerConfig struct {
	WorkMinutes      int           `env:"POMO_WORK_MINUTES"`
	BreakMinutes     int           `env:"POMO_BREAK_MINUTES"`
	LongBreakMinutes int           `env:"POMO_LONG_BREAK_MINUTES"`
	LongBreakEvery   int           `env:"POMO_LONG_BREAK_EVERY"`
	Unit             time.Duration `env:"POMO_TIME_UNIT"`
	TickInterval     time.Duration `env:"POMO_TICK_INTERVAL"`
}

// PromptConfig holds title prompt configuration
type PromptConfig struct {
	Timeout        time.Duration `env:"POMO_PROMPT_TIMEOUT"`
	DefaultTitle   string        `env:"POMO_DEFAULT_TITLE"`
	TitleMaxLength int           `env:"POMO_TITLE_MAX_LENGTH"`
}

// LogConfig holds session log file configuration
type LogConfig struct {
	Dir             string `env:"POMO_LOG_DIR"`
	Filename        string `env:"POMO_LOG_FILENAME"`
	DirPermissions  uint32 `env:"POMO_LOG_DIR_PERMISSIONS"`
	FilePermissions uint32 `env:"POMO_LOG_FILE_PERMISSIONS"`
}

// NotifyConfig holds completion alert configuration
type NotifyConfig struct {
	Enabled bool   `env:"POMO_NOTIFY"`
	Sound   bool   `env:"POMO_SOUND"`
	AppName string `env:"POMO_APP_NAME"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"POMO_TIME_DISPLAY_FORMAT"`
	Plain      bool   `env:"POMO_PLAIN"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"POMO_APP_TIMEOUT"`
	Verbose bool          `env:"POMO_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultLogDir := filepath.Join(homeDir, ".pomo")

	return &Config{
		Timer: TimerConfig{
			WorkMinutes:      25,
			BreakMinutes:     5,
			LongBreakMinutes: 15,
			LongBreakEvery:   0,
			Unit:             time.Minute,
			TickInterval:     time.Second,
		},
		Prompt: PromptConfig{
			Timeout:        5 * time.Second,
			DefaultTitle:   "Pomodoro",
			TitleMaxLength: 200,
		},
		Log: LogConfig{
			Dir:             defaultLogDir,
			Filename:        "pomo_log.csv",
			DirPermissions:  0755,
			FilePermissions: 0644,
		},
		Notify: NotifyConfig{
			Enabled: true,
			Sound:   true,
			AppName: "pomo",
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
			Plain:      false,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetLogPath returns the full path to the session log file
func (c *Config) GetLogPath() string {
	return filepath.Join(c.Log.Dir, c.Log.Filename)
}

// GetDebugLogPath returns the path the TUI writes debug output to
func (c *Config) GetDebugLogPath() string {
	return filepath.Join(c.Log.Dir, "debug.log")
}

// WorkDuration returns the length of one work interval
func (c *Config) WorkDuration() time.Duration {
	return time.Duration(c.Timer.WorkMinutes) * c.Timer.Unit
}

// BreakDuration returns the length of one short break
func (c *Config) BreakDuration() time.Duration {
	return time.Duration(c.Timer.BreakMinutes) * c.Timer.Unit
}

// LongBreakDuration returns the length of one long break
func (c *Config) LongBreakDuration() time.Duration {
	return time.Duration(c.Timer.LongBreakMinutes) * c.Timer.Unit
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are reported as a *ConfigError naming the variable.
func (c *Config) LoadFromEnvironment() error {
	// Timer configuration
	if err := envInt("POMO_WORK_MINUTES", &c.Timer.WorkMinutes); err != nil {
		return err
	}
	if err := envInt("POMO_BREAK_MINUTES", &c.Timer.BreakMinutes); err != nil {
		return err
	}
	if err := envInt("POMO_LONG_BREAK_MINUTES", &c.Timer.LongBreakMinutes); err != nil {
		return err
	}
	if err := envInt("POMO_LONG_BREAK_EVERY", &c.Timer.LongBreakEvery); err != nil {
		return err
	}
	if err := envDuration("POMO_TIME_UNIT", &c.Timer.Unit); err != nil {
		return err
	}
	if err := envDuration("POMO_TICK_INTERVAL", &c.Timer.TickInterval); err != nil {
		return err
	}

	// Prompt configuration
	if err := envDuration("POMO_PROMPT_TIMEOUT", &c.Prompt.Timeout); err != nil {
		return err
	}
	if title := os.Getenv("POMO_DEFAULT_TITLE"); title != "" {
		c.Prompt.DefaultTitle = title
	}
	if err := envInt("POMO_TITLE_MAX_LENGTH", &c.Prompt.TitleMaxLength); err != nil {
		return err
	}

	// Log configuration
	if dir := os.Getenv("POMO_LOG_DIR"); dir != "" {
		c.Log.Dir = dir
	}
	if filename := os.Getenv("POMO_LOG_FILENAME"); filename != "" {
		c.Log.Filename = filename
	}
	if err := envMode("POMO_LOG_DIR_PERMISSIONS", &c.Log.DirPermissions); err != nil {
		return err
	}
	if err := envMode("POMO_LOG_FILE_PERMISSIONS", &c.Log.FilePermissions); err != nil {
		return err
	}

	// Notification configuration
	if err := envBool("POMO_NOTIFY", &c.Notify.Enabled); err != nil {
		return err
	}
	if err := envBool("POMO_SOUND", &c.Notify.Sound); err != nil {
		return err
	}
	if name := os.Getenv("POMO_APP_NAME"); name != "" {
		c.Notify.AppName = name
	}

	// Display configuration
	if format := os.Getenv("POMO_TIME_DISPLAY_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if err := envBool("POMO_PLAIN", &c.Display.Plain); err != nil {
		return err
	}

	// Application configuration
	if err := envDuration("POMO_APP_TIMEOUT", &c.Application.Timeout); err != nil {
		return err
	}
	if err := envBool("POMO_APP_VERBOSE", &c.Application.Verbose); err != nil {
		return err
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate timer configuration
	if c.Timer.WorkMinutes <= 0 {
		return &ConfigError{Field: "timer.work_minutes", Message: "work minutes must be positive"}
	}
	if c.Timer.WorkMinutes > 24*60 {
		return &ConfigError{Field: "timer.work_minutes", Message: "work minutes must be at most one day"}
	}
	if c.Timer.BreakMinutes <= 0 {
		return &ConfigError{Field: "timer.break_minutes", Message: "break minutes must be positive"}
	}
	if c.Timer.LongBreakMinutes <= 0 {
		return &ConfigError{Field: "timer.long_break_minutes", Message: "long break minutes must be positive"}
	}
	if c.Timer.LongBreakEvery < 0 {
		return &ConfigError{Field: "timer.long_break_every", Message: "long break interval cannot be negative"}
	}
	if c.Timer.Unit <= 0 {
		return &ConfigError{Field: "timer.unit", Message: "time unit must be positive"}
	}
	if c.Timer.TickInterval <= 0 {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be positive"}
	}

	// Validate prompt configuration
	if c.Prompt.Timeout <= 0 {
		return &ConfigError{Field: "prompt.timeout", Message: "prompt timeout must be positive"}
	}
	if c.Prompt.DefaultTitle == "" {
		return &ConfigError{Field: "prompt.default_title", Message: "default title cannot be empty"}
	}
	if c.Prompt.TitleMaxLength < 1 {
		return &ConfigError{Field: "prompt.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if len(c.Prompt.DefaultTitle) > c.Prompt.TitleMaxLength {
		return &ConfigError{Field: "prompt.default_title", Message: "default title is longer than the title maximum length"}
	}

	// Validate log configuration
	if c.Log.Dir == "" {
		return &ConfigError{Field: "log.dir", Message: "log directory cannot be empty"}
	}
	if c.Log.Filename == "" {
		return &ConfigError{Field: "log.filename", Message: "log filename cannot be empty"}
	}
	if c.Log.DirPermissions > 0777 || c.Log.FilePermissions > 0777 {
		return &ConfigError{Field: "log.permissions", Message: "permissions must be at most 0777"}
	}

	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Field: name, Message: "must be an integer"}
	}
	*dst = n
	return nil
}

func envMode(name string, dst *uint32) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	p, err := strconv.ParseUint(v, 8, 32)
	if err != nil {
		return &ConfigError{Field: name, Message: "must be an octal file mode"}
	}
	*dst = uint32(p)
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &ConfigError{Field: name, Message: "must be a duration such as 5s or 1m"}
	}
	*dst = d
	return nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &ConfigError{Field: name, Message: "must be true or false"}
	}
	*dst = b
	return nil
}
