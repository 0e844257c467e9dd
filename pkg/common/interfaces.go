package common

import (
	"context"
)

// This is the interface that needs to be implemented by release fetchers.
type IReleaseFetcher interface {
	// Gets the latest release from the given endpoint.
	Fetch(ctx context.Context, endpoint string) (*ReleaseInfo, error)
}

// This is the interface for the host collaborator which installs a downloaded bundle.
type IInstaller interface {
	// Installs the bundle at the given path.
	Install(ctx context.Context, candidate *UpdateCandidate, bundlePath string) error
}
