// Package installer downloads the bundle of an update and hands it to the host for installation.
package installer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/roemer/extupdate/pkg/common"
)

type InstallerSettings struct {
	// The logger to use for the installer.
	Logger *slog.Logger
	// The directory where bundles are downloaded to. Defaults to the temp directory.
	DownloadDir string
	// Host rules that might apply when downloading.
	HostRules []*common.HostRule
	// The http client to use for downloads.
	HttpClient *http.Client
	// The collaborator which installs a downloaded bundle. Can be nil for download-only usage.
	Host common.IInstaller
}

type Installer struct {
	logger   *slog.Logger
	settings *InstallerSettings
}

func NewInstaller(settings *InstallerSettings) *Installer {
	return &Installer{
		logger:   settings.Logger.With(slog.String("component", "installer")),
		settings: settings,
	}
}

var fileNameCleanupRegex = regexp.MustCompile(`[^a-zA-Z0-9\.\-_]+`)

// Gets the path where the bundle of the given candidate is stored.
func (i *Installer) BundlePath(candidate *common.UpdateCandidate) string {
	downloadDir := i.settings.DownloadDir
	if downloadDir == "" {
		downloadDir = filepath.Join(os.TempDir(), "extupdate")
	}
	fileName := fmt.Sprintf("%s-%s", candidate.PackageIdentifier, candidate.RemoteVersion)
	fileName = fileNameCleanupRegex.ReplaceAllString(fileName, "-")
	return filepath.Join(downloadDir, fileName+common.BUNDLE_FILE_EXTENSION)
}

// Downloads the bundle of the candidate and returns the path to the file.
func (i *Installer) Download(ctx context.Context, candidate *common.UpdateCandidate) (string, error) {
	bundlePath := i.BundlePath(candidate)
	i.logger.Info(fmt.Sprintf("Downloading '%s' %s", candidate.DisplayName, candidate.RemoteVersion))
	i.logger.Debug(fmt.Sprintf("Downloading %s to %s", candidate.DownloadUrl, bundlePath))
	if err := common.HttpUtil.DownloadToFile(ctx, i.settings.HttpClient, candidate.DownloadUrl, bundlePath, i.settings.HostRules); err != nil {
		return "", fmt.Errorf("failed downloading the bundle of '%s': %w", candidate.DisplayName, err)
	}
	return bundlePath, nil
}

// Downloads the bundle and passes it to the host for installation.
func (i *Installer) Install(ctx context.Context, candidate *common.UpdateCandidate) (string, error) {
	if i.settings.Host == nil {
		return "", fmt.Errorf("no install command configured")
	}
	bundlePath, err := i.Download(ctx, candidate)
	if err != nil {
		return "", err
	}
	i.logger.Info(fmt.Sprintf("Installing '%s' %s", candidate.DisplayName, candidate.RemoteVersion))
	if err := i.settings.Host.Install(ctx, candidate, bundlePath); err != nil {
		return bundlePath, fmt.Errorf("failed installing '%s': %w", candidate.DisplayName, err)
	}
	return bundlePath, nil
}
