package common

import (
	"errors"
	"fmt"
)

var (
	// The release endpoint could not be reached or answered with an error.
	ErrNetwork = errors.New("network error")
	// The release or metadata document could not be parsed.
	ErrParse = errors.New("parse error")
	// The release does not contain an installable bundle.
	ErrArtifactNotFound = errors.New("no installable bundle found")
	// A version string is not a valid major.minor.patch version.
	ErrVersionParse = errors.New("invalid version")
)

// An error that happened while processing a specific extension.
type PackageError struct {
	// The label of the extension.
	Package string
	// The endpoint that was queried, if any.
	Endpoint string
	Err      error
}

func NewPackageError(pkg *PackageDescriptor, endpoint string, err error) *PackageError {
	return &PackageError{Package: pkg.Label(), Endpoint: endpoint, Err: err}
}

func (e *PackageError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("extension '%s' (%s): %s", e.Package, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("extension '%s': %s", e.Package, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
