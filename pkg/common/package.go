package common

import (
	"fmt"
	"strings"
)

// This type represents one locally installed extension which opted into update checks.
type PackageDescriptor struct {
	// The stable machine name of the extension.
	Identifier string
	// The human readable name of the extension.
	DisplayName string
	// The installed version (unprocessed).
	InstalledVersion string
	// The url (or shorthand) of the release endpoint of the extension.
	UpdateEndpoint string
	// The directory where the extension was found.
	Directory string
}

func (p *PackageDescriptor) String() string {
	parts := []string{}
	if p.Identifier != "" {
		parts = append(parts, fmt.Sprintf("id: %s", p.Identifier))
	}
	if p.DisplayName != "" {
		parts = append(parts, fmt.Sprintf("name: %s", p.DisplayName))
	}
	if p.InstalledVersion != "" {
		parts = append(parts, fmt.Sprintf("version: %s", p.InstalledVersion))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// Gets the name used when talking to the user about the extension.
func (p *PackageDescriptor) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Identifier
}

// This type represents an extension for which a newer stable release is available.
type UpdateCandidate struct {
	PackageIdentifier string
	DisplayName       string
	InstalledVersion  string
	// The remote version with the tag prefix removed.
	RemoteVersion string
	// The url of the installable bundle.
	DownloadUrl string
}
