// Package extupdate checks installed Aseprite extensions for updates on their release pages.
//
// The packages below pkg/ can be used on their own. This package only bundles the most common entry points.
package extupdate

import (
	"log/slog"

	"github.com/roemer/extupdate/pkg/config"
	"github.com/roemer/extupdate/pkg/updater"
	"github.com/roemer/extupdate/pkg/versioning"
)

// Load the default configuration.
func LoadDefaultConfig() (*config.ExtupdateConfig, error) {
	return LoadConfig("preset:defaults")
}

// Load a given configuration.
func LoadConfig(configPath string) (*config.ExtupdateConfig, error) {
	return config.Load(configPath)
}

// Get an updater for the given configuration.
func NewUpdater(logger *slog.Logger, cfg *config.ExtupdateConfig) *updater.Updater {
	return updater.NewUpdater(&updater.UpdaterSettings{Logger: logger, Config: cfg})
}

// Checks if the remote tag is a newer stable version than the installed version.
func IsUpdateAvailable(installed string, remote string) (bool, error) {
	return versioning.IsUpdateAvailable(installed, remote)
}
