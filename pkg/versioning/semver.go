// Package versioning parses extension versions and decides if a remote release is an update.
package versioning

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/gover"
)

// A strictly parsed semantic version.
type SemVer struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	// The string the version was parsed from.
	Raw string
}

var semVerRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:[-+](.+))?$`)
var leadingNonDigitsRegex = regexp.MustCompile(`^\D+`)

// Parses the given string as major.minor.patch with an optional prerelease or build suffix.
func Parse(versionString string) (*SemVer, error) {
	m := semVerRegex.FindStringSubmatch(versionString)
	if m == nil {
		return nil, fmt.Errorf("%w: '%s' is not in the form major.minor.patch", common.ErrVersionParse, versionString)
	}
	parts := [3]int{}
	for i := range parts {
		value, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %v", common.ErrVersionParse, versionString, err)
		}
		parts[i] = value
	}
	return &SemVer{
		Major:      parts[0],
		Minor:      parts[1],
		Patch:      parts[2],
		Prerelease: m[4],
		Raw:        versionString,
	}, nil
}

// Removes everything in front of the first digit (eg. "v" or "version").
func StripTagPrefix(tag string) string {
	return leadingNonDigitsRegex.ReplaceAllString(tag, "")
}

// The version is considered stable if it has no prerelease label.
func (v *SemVer) IsStable() bool {
	return v.Prerelease == ""
}

func (v *SemVer) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		return base + "-" + v.Prerelease
	}
	return base
}

func (v *SemVer) toGover() *gover.Version {
	return gover.ParseSimple(v.Major, v.Minor, v.Patch)
}

// Checks if the numeric part of this version is lower than the one of the other version.
func (v *SemVer) LessThan(other *SemVer) bool {
	return v.toGover().LessThan(other.toGover())
}

// Checks if the remote tag is a stable release which is newer than the installed version.
func IsUpdateAvailable(installed string, remote string) (bool, error) {
	installedVersion, err := Parse(installed)
	if err != nil {
		return false, fmt.Errorf("installed version: %w", err)
	}
	remoteVersion, err := Parse(StripTagPrefix(remote))
	if err != nil {
		return false, fmt.Errorf("remote version: %w", err)
	}
	// Unstable releases are never offered
	if !remoteVersion.IsStable() {
		return false, nil
	}
	return installedVersion.LessThan(remoteVersion), nil
}
