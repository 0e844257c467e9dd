// Package updater wires the scanner, the resolver and the installer together.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/extupdate/pkg/config"
	"github.com/roemer/extupdate/pkg/installer"
	"github.com/roemer/extupdate/pkg/releases"
	"github.com/roemer/extupdate/pkg/resolver"
	"github.com/roemer/extupdate/pkg/scanner"
)

type UpdaterSettings struct {
	Logger *slog.Logger
	Config *config.ExtupdateConfig
	// Optional http client for release queries and downloads.
	HttpClient *http.Client
	// Optional host collaborator. Defaults to a command installer if the config has an install command.
	Host common.IInstaller
}

// Runs check passes and installs. Only one operation runs at a time.
type Updater struct {
	mu        sync.Mutex
	logger    *slog.Logger
	config    *config.ExtupdateConfig
	scanner   *scanner.Scanner
	resolver  *resolver.Resolver
	installer *installer.Installer
}

// The outcome of installing one extension.
type InstallResult struct {
	Candidate  *common.UpdateCandidate
	BundlePath string
	// Whether the bundle was handed to the host or only downloaded.
	Installed bool
	// The check pass after the install. Nil if that pass failed.
	Remaining *resolver.ResolveResult
	// The error of the check pass after the install, if any.
	RemainingErr error
}

func NewUpdater(settings *UpdaterSettings) *Updater {
	cfg := settings.Config
	host := settings.Host
	if host == nil && len(cfg.InstallCommand) > 0 {
		host = installer.NewCommandInstaller(settings.Logger, cfg.InstallCommand)
	}
	fetcher := releases.NewFetcher(&releases.FetcherSettings{
		Logger:       settings.Logger,
		HostRules:    cfg.HostRules,
		GitHubApiUrl: cfg.GitHubApiUrl,
		HttpClient:   settings.HttpClient,
	})
	return &Updater{
		logger: settings.Logger,
		config: cfg,
		scanner: scanner.NewScanner(&scanner.ScannerSettings{
			Logger:         settings.Logger,
			IgnorePatterns: cfg.IgnorePatterns,
		}),
		resolver: resolver.NewResolver(&resolver.ResolverSettings{
			Logger:   settings.Logger,
			Fetcher:  fetcher,
			FailFast: cfg.IsFailFast(),
		}),
		installer: installer.NewInstaller(&installer.InstallerSettings{
			Logger:      settings.Logger,
			DownloadDir: cfg.DownloadDirExpanded(),
			HostRules:   cfg.HostRules,
			HttpClient:  settings.HttpClient,
			Host:        host,
		}),
	}
}

// Scans the extensions directory and checks all found extensions for updates.
func (u *Updater) Check(ctx context.Context) (*resolver.ResolveResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.check(ctx)
}

// Downloads (and installs if downloadOnly is false) the update of the given extension.
// A new check pass is run afterwards to report the remaining updates. A failure of that pass
// does not fail the install, it is kept in the result instead.
func (u *Updater) Install(ctx context.Context, identifier string, downloadOnly bool) (*InstallResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	result, err := u.check(ctx)
	if err != nil {
		return nil, err
	}
	candidate, ok := result.FindUpdate(identifier)
	if !ok {
		return nil, fmt.Errorf("no update available for extension '%s'", identifier)
	}

	installResult := &InstallResult{Candidate: candidate}
	if downloadOnly {
		installResult.BundlePath, err = u.installer.Download(ctx, candidate)
	} else {
		installResult.BundlePath, err = u.installer.Install(ctx, candidate)
		installResult.Installed = err == nil
	}
	if err != nil {
		return nil, err
	}

	remaining, err := u.check(ctx)
	if err != nil {
		u.logger.Warn(fmt.Sprintf("Could not list the remaining updates: %v", err))
		installResult.RemainingErr = err
		return installResult, nil
	}
	installResult.Remaining = remaining
	return installResult, nil
}

func (u *Updater) check(ctx context.Context) (*resolver.ResolveResult, error) {
	extensionsDir := u.config.ExtensionsDirExpanded()
	if extensionsDir == "" {
		return nil, fmt.Errorf("no extensions directory configured")
	}
	u.logger.Info(fmt.Sprintf("Searching extensions in '%s'", extensionsDir))
	descriptors, err := u.scanner.Scan(extensionsDir)
	if err != nil {
		return nil, err
	}
	u.logger.Info(fmt.Sprintf("Found %d extension(s) with update information", len(descriptors)))
	return u.resolver.Resolve(ctx, descriptors)
}
