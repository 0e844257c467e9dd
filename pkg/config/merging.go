package config

import (
	"slices"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/samber/lo"
)

func (configA *ExtupdateConfig) MergeWithAsCopy(configB *ExtupdateConfig) *ExtupdateConfig {
	merged := &ExtupdateConfig{}
	merged.MergeWith(configA)
	merged.MergeWith(configB)
	return merged
}

// Merges the values of configB into configA. Values set in configB win.
func (configA *ExtupdateConfig) MergeWith(configB *ExtupdateConfig) {
	if configB == nil {
		return
	}
	// Extends
	configA.Extends = lo.Union(configA.Extends, configB.Extends)
	// ExtensionsDir
	if configB.ExtensionsDir != "" {
		configA.ExtensionsDir = configB.ExtensionsDir
	}
	// IgnorePatterns
	configA.IgnorePatterns = lo.Union(configA.IgnorePatterns, configB.IgnorePatterns)
	// CheckAtStartup
	if configB.CheckAtStartup != nil {
		configA.CheckAtStartup = lo.ToPtr(*configB.CheckAtStartup)
	}
	// FailFast
	if configB.FailFast != nil {
		configA.FailFast = lo.ToPtr(*configB.FailFast)
	}
	// GitHubApiUrl
	if configB.GitHubApiUrl != "" {
		configA.GitHubApiUrl = configB.GitHubApiUrl
	}
	// DownloadDir
	if configB.DownloadDir != "" {
		configA.DownloadDir = configB.DownloadDir
	}
	// InstallCommand is replaced as a whole
	if len(configB.InstallCommand) > 0 {
		configA.InstallCommand = slices.Clone(configB.InstallCommand)
	}
	// Host Rules, later rules are checked first
	for _, hostRule := range slices.Backward(configB.HostRules) {
		configA.HostRules = slices.Insert(configA.HostRules, 0, &common.HostRule{
			MatchHost: hostRule.MatchHost,
			Username:  hostRule.Username,
			Password:  hostRule.Password,
			Token:     hostRule.Token,
		})
	}
}
