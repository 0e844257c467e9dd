package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/roemer/extupdate/pkg/common"
)

// This type represents the extupdate config object.
type ExtupdateConfig struct {
	// A list of presets to also load before loading this config. All configs are merged together.
	Extends []string `json:"extends" yaml:"extends"`
	// The directory which contains the installed extensions.
	ExtensionsDir string `json:"extensionsDir" yaml:"extensionsDir"`
	// A list of patterns of extension directories that will be ignored.
	IgnorePatterns []string `json:"ignorePatterns" yaml:"ignorePatterns"`
	// Flag if the host should check for updates when it starts.
	CheckAtStartup *bool `json:"checkAtStartup" yaml:"checkAtStartup"`
	// Flag to abort the whole check when a release endpoint cannot be queried.
	FailFast *bool `json:"failFast" yaml:"failFast"`
	// The base url of the GitHub API, used for "github:owner/repo" update urls.
	GitHubApiUrl string `json:"githubApiUrl" yaml:"githubApiUrl"`
	// The directory where downloaded bundles are stored.
	DownloadDir string `json:"downloadDir" yaml:"downloadDir"`
	// The command which installs a downloaded bundle. "{file}" is replaced with the bundle path.
	InstallCommand []string `json:"installCommand" yaml:"installCommand"`
	// A list of rules that can apply to hosts.
	HostRules []*common.HostRule `json:"hostRules" yaml:"hostRules"`
}

// Gets the extensions directory with environment variables and "~" expanded.
func (c *ExtupdateConfig) ExtensionsDirExpanded() string {
	return expandPath(c.ExtensionsDir)
}

// Gets the download directory with environment variables and "~" expanded.
func (c *ExtupdateConfig) DownloadDirExpanded() string {
	return expandPath(c.DownloadDir)
}

func (c *ExtupdateConfig) IsCheckAtStartup() bool {
	return c.CheckAtStartup == nil || *c.CheckAtStartup
}

func (c *ExtupdateConfig) IsFailFast() bool {
	return c.FailFast != nil && *c.FailFast
}

func expandPath(value string) string {
	if value == "" {
		return ""
	}
	value = os.ExpandEnv(value)
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	return filepath.Clean(value)
}
