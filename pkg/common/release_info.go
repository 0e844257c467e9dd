package common

// This type contains information about the latest release of an extension.
type ReleaseInfo struct {
	// The raw tag of the release, may contain prefixes like "v".
	TagLabel string
	// The assets attached to the release in the order of the release source.
	Assets []*Asset
}

// A downloadable file attached to a release.
type Asset struct {
	Name        string
	DownloadUrl string
}
