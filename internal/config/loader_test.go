package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	clearEnv(t)
	t.Setenv("POMO_WORK_MINUTES", "30")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Timer.WorkMinutes)
}

func TestLoader_Load_RejectsInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("POMO_BREAK_MINUTES", "0")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "break minutes must be positive")
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POMO_WORK_MINUTES", "30")
	t.Setenv("POMO_BREAK_MINUTES", "0") // fixed by the override below

	work := 45
	brk := 10
	unit := time.Millisecond
	plain := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		WorkMinutes:  &work,
		BreakMinutes: &brk,
		Unit:         &unit,
		Plain:        &plain,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Timer.WorkMinutes, "flags win over environment")
	assert.Equal(t, 10, cfg.Timer.BreakMinutes)
	assert.Equal(t, time.Millisecond, cfg.Timer.Unit)
	assert.True(t, cfg.Display.Plain)
	assert.Equal(t, 15, cfg.Timer.LongBreakMinutes, "untouched fields keep defaults")
}

func TestLoader_LoadWithOverrides_ValidatesResult(t *testing.T) {
	clearEnv(t)

	zero := 0
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{WorkMinutes: &zero})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "timer.work_minutes", cfgErr.Field)
}

func TestConfigOverrides_Apply(t *testing.T) {
	cfg := NewConfig()
	dir := "/tmp/elsewhere"
	title := "Reading"
	notify := false
	sound := false
	timeout := 3 * time.Second

	(&ConfigOverrides{
		LogDir:        &dir,
		DefaultTitle:  &title,
		NotifyEnabled: &notify,
		SoundEnabled:  &sound,
		PromptTimeout: &timeout,
	}).Apply(cfg)

	assert.Equal(t, dir, cfg.Log.Dir)
	assert.Equal(t, title, cfg.Prompt.DefaultTitle)
	assert.False(t, cfg.Notify.Enabled)
	assert.False(t, cfg.Notify.Sound)
	assert.Equal(t, timeout, cfg.Prompt.Timeout)
}
