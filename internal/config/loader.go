package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(l.config)
	}

	// Validate once everything is layered
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides. A nil field means the flag
// was not given.
type ConfigOverrides struct {
	// Timer overrides
	WorkMinutes      *int
	BreakMinutes     *int
	LongBreakMinutes *int
	LongBreakEvery   *int
	Unit             *time.Duration
	TickInterval     *time.Duration

	// Prompt overrides
	PromptTimeout *time.Duration
	DefaultTitle  *string

	// Log overrides
	LogDir      *string
	LogFilename *string

	// Notification overrides
	NotifyEnabled *bool
	SoundEnabled  *bool

	// Display overrides
	TimeFormat *string
	Plain      *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every set override onto config
func (o *ConfigOverrides) Apply(config *Config) {
	// Timer overrides
	if o.WorkMinutes != nil {
		config.Timer.WorkMinutes = *o.WorkMinutes
	}
	if o.BreakMinutes != nil {
		config.Timer.BreakMinutes = *o.BreakMinutes
	}
	if o.LongBreakMinutes != nil {
		config.Timer.LongBreakMinutes = *o.LongBreakMinutes
	}
	if o.LongBreakEvery != nil {
		config.Timer.LongBreakEvery = *o.LongBreakEvery
	}
	if o.Unit != nil {
		config.Timer.Unit = *o.Unit
	}
	if o.TickInterval != nil {
		config.Timer.TickInterval = *o.TickInterval
	}

	// Prompt overrides
	if o.PromptTimeout != nil {
		config.Prompt.Timeout = *o.PromptTimeout
	}
	if o.DefaultTitle != nil {
		config.Prompt.DefaultTitle = *o.DefaultTitle
	}

	// Log overrides
	if o.LogDir != nil {
		config.Log.Dir = *o.LogDir
	}
	if o.LogFilename != nil {
		config.Log.Filename = *o.LogFilename
	}

	// Notification overrides
	if o.NotifyEnabled != nil {
		config.Notify.Enabled = *o.NotifyEnabled
	}
	if o.SoundEnabled != nil {
		config.Notify.Sound = *o.SoundEnabled
	}

	// Display overrides
	if o.TimeFormat != nil {
		config.Display.TimeFormat = *o.TimeFormat
	}
	if o.Plain != nil {
		config.Display.Plain = *o.Plain
	}

	// Application overrides
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}
