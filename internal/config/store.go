package config

import (
	"os"

	"pomo/internal/sessionlog"
)

// CreateStore creates the session log store described by config
func CreateStore(config *Config) *sessionlog.Store {
	return sessionlog.New(config.GetLogPath(),
		sessionlog.WithDirPermissions(os.FileMode(config.Log.DirPermissions)),
		sessionlog.WithFilePermissions(os.FileMode(config.Log.FilePermissions)),
	)
}
