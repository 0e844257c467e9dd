package common

var TruePtr *bool = &[]bool{true}[0]
var FalsePtr *bool = &[]bool{false}[0]

const (
	// The name of the metadata file inside each extension directory.
	PACKAGE_METADATA_FILE = "package.json"
	// The key of the object inside the metadata that opts an extension into update checks.
	PACKAGE_OPT_IN_KEY = "extensionUpdater"
	// The file extension of an installable bundle.
	BUNDLE_FILE_EXTENSION = ".aseprite-extension"
	// The prefix for the GitHub shorthand of an update url.
	GITHUB_SHORTHAND_PREFIX = "github:"
	// The default url of the GitHub API.
	DEFAULT_GITHUB_API_URL = "https://api.github.com"
)
