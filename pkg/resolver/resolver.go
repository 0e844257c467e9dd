// Package resolver checks a set of extensions against their release endpoints.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/extupdate/pkg/releases"
	"github.com/roemer/extupdate/pkg/versioning"
	"github.com/samber/lo"
)

type ResolverSettings struct {
	// The logger to use for the resolver.
	Logger *slog.Logger
	// The fetcher used to get the latest release of an extension.
	Fetcher common.IReleaseFetcher
	// Abort the whole pass on the first failed fetch instead of recording it.
	FailFast bool
}

type Resolver struct {
	logger   *slog.Logger
	settings *ResolverSettings
}

// The outcome of one resolution pass.
type ResolveResult struct {
	// Extensions with a newer stable release.
	Updates []*common.UpdateCandidate
	// Labels of extensions whose release has no installable bundle.
	AssetFailures []string
	// Extensions which could not be checked.
	Failures []*common.PackageError
	// Labels of extensions which are up to date.
	UpToDate []string
}

func NewResolver(settings *ResolverSettings) *Resolver {
	return &Resolver{
		logger:   settings.Logger.With(slog.String("component", "resolver")),
		settings: settings,
	}
}

// Checks all given extensions sequentially and collects the results.
// An error is only returned when FailFast is set and a fetch failed.
func (r *Resolver) Resolve(ctx context.Context, descriptors []*common.PackageDescriptor) (*ResolveResult, error) {
	result := &ResolveResult{
		Updates:       []*common.UpdateCandidate{},
		AssetFailures: []string{},
		Failures:      []*common.PackageError{},
		UpToDate:      []string{},
	}
	for _, descriptor := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.resolvePackage(ctx, descriptor, result); err != nil {
			return nil, err
		}
	}
	r.logger.Info(fmt.Sprintf("Checked %d extension(s): %d update(s), %d without bundle, %d failed",
		len(descriptors), len(result.Updates), len(result.AssetFailures), len(result.Failures)))
	return result, nil
}

func (r *Resolver) resolvePackage(ctx context.Context, descriptor *common.PackageDescriptor, result *ResolveResult) error {
	logger := r.logger.With(slog.String("extension", descriptor.Identifier))
	logger.Debug(fmt.Sprintf("Checking for an update of version %s", descriptor.InstalledVersion))

	release, err := r.settings.Fetcher.Fetch(ctx, descriptor.UpdateEndpoint)
	if err != nil {
		packageError := common.NewPackageError(descriptor, descriptor.UpdateEndpoint, err)
		if r.settings.FailFast {
			return packageError
		}
		logger.Warn(fmt.Sprintf("Fetching the release failed: %s", err))
		result.Failures = append(result.Failures, packageError)
		return nil
	}

	downloadUrl, err := releases.SelectArtifact(release.Assets)
	if err != nil {
		logger.Warn(fmt.Sprintf("Release %s has no installable bundle", release.TagLabel))
		result.AssetFailures = append(result.AssetFailures, descriptor.Label())
		return nil
	}

	isUpdate, err := versioning.IsUpdateAvailable(descriptor.InstalledVersion, release.TagLabel)
	if err != nil {
		logger.Warn(fmt.Sprintf("Comparing the versions failed: %s", err))
		result.Failures = append(result.Failures, common.NewPackageError(descriptor, "", err))
		return nil
	}
	if !isUpdate {
		logger.Debug("No update found")
		result.UpToDate = append(result.UpToDate, descriptor.Label())
		return nil
	}

	candidate := &common.UpdateCandidate{
		PackageIdentifier: descriptor.Identifier,
		DisplayName:       descriptor.DisplayName,
		InstalledVersion:  descriptor.InstalledVersion,
		RemoteVersion:     versioning.StripTagPrefix(release.TagLabel),
		DownloadUrl:       downloadUrl,
	}
	logger.Info(fmt.Sprintf("Update found: %s -> %s", candidate.InstalledVersion, candidate.RemoteVersion))
	result.Updates = append(result.Updates, candidate)
	return nil
}

// Checks if nothing needs the attention of the user.
func (r *ResolveResult) IsUpToDate() bool {
	return len(r.Updates) == 0 && len(r.AssetFailures) == 0 && len(r.Failures) == 0
}

// Gets the candidate for the given extension identifier.
func (r *ResolveResult) FindUpdate(identifier string) (*common.UpdateCandidate, bool) {
	return lo.Find(r.Updates, func(c *common.UpdateCandidate) bool { return c.PackageIdentifier == identifier })
}

// Combines all problems of the pass into one error, or nil if there are none.
func (r *ResolveResult) Problems() error {
	var result *multierror.Error
	for _, label := range r.AssetFailures {
		result = multierror.Append(result, fmt.Errorf("extension '%s': %w, please contact its maintainer", label, common.ErrArtifactNotFound))
	}
	for _, failure := range r.Failures {
		result = multierror.Append(result, failure)
	}
	return result.ErrorOrNil()
}

// Checks if any of the failures was caused by the given error.
func (r *ResolveResult) HasFailure(target error) bool {
	return lo.SomeBy(r.Failures, func(f *common.PackageError) bool { return errors.Is(f, target) })
}
