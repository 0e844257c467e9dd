package versioning

import (
	"testing"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	v, err := Parse("1.2.3")
	assert.NoError(err)
	assert.Equal(1, v.Major)
	assert.Equal(2, v.Minor)
	assert.Equal(3, v.Patch)
	assert.Empty(v.Prerelease)
	assert.True(v.IsStable())

	v, err = Parse("1.2.3-beta.1")
	assert.NoError(err)
	assert.Equal("beta.1", v.Prerelease)
	assert.False(v.IsStable())
	assert.Equal("1.2.3-beta.1", v.String())

	v, err = Parse("10.20.30+build5")
	assert.NoError(err)
	assert.Equal(10, v.Major)
	assert.Equal("build5", v.Prerelease)
}

func TestParseRejectsIncompleteVersions(t *testing.T) {
	assert := assert.New(t)

	for _, input := range []string{"", "1", "1.2", "1.2.x", "v1.2.3", "a.b.c", "1.2.3.4", "1.2.3-", "1.2.3+"} {
		_, err := Parse(input)
		assert.ErrorIs(err, common.ErrVersionParse, input)
	}
}

func TestStripTagPrefix(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("2.5.0", StripTagPrefix("v2.5.0"))
	assert.Equal("2.5.0", StripTagPrefix("version2.5.0"))
	assert.Equal("2.5.0", StripTagPrefix("2.5.0"))
	assert.Equal("", StripTagPrefix("latest"))

	a, err := Parse(StripTagPrefix("version2.5.0"))
	assert.NoError(err)
	b, err := Parse(StripTagPrefix("v2.5.0"))
	assert.NoError(err)
	assert.Equal([3]int{2, 5, 0}, [3]int{a.Major, a.Minor, a.Patch})
	assert.Equal([3]int{a.Major, a.Minor, a.Patch}, [3]int{b.Major, b.Minor, b.Patch})
}

func TestIsUpdateAvailable(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		installed string
		remote    string
		expected  bool
	}{
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "v1.2.3", false},
		{"1.9.9", "2.0.0", true},
		{"2.0.0", "1.9.9", false},
		{"1.2.3", "1.2.4", true},
		{"1.2.3", "1.3.0", true},
		{"1.2.3", "1.2.2", false},
		{"1.5.0", "1.4.9", false},
		{"0.9.0", "v1.0.0", true},
		{"1.0.0", "v1.1.0-alpha", false},
		{"1.0.0", "release-2.0.0-rc1", false},
		{"1.0.0-beta", "1.0.0", false},
		{"1.0.0", "version1.0.1", true},
	}
	for _, test := range tests {
		result, err := IsUpdateAvailable(test.installed, test.remote)
		assert.NoError(err)
		assert.Equal(test.expected, result, "%s -> %s", test.installed, test.remote)
	}
}

func TestIsUpdateAvailableMatchesTripleOrdering(t *testing.T) {
	assert := assert.New(t)

	versions := []string{"0.0.1", "0.1.0", "0.1.1", "1.0.0", "1.0.10", "1.2.0", "2.0.0", "2.0.1", "10.0.0"}
	for i, a := range versions {
		for j, b := range versions {
			result, err := IsUpdateAvailable(a, b)
			assert.NoError(err)
			assert.Equal(j > i, result, "%s -> %s", a, b)
		}
	}
}

func TestIsUpdateAvailableFailsOnInvalidVersions(t *testing.T) {
	assert := assert.New(t)

	_, err := IsUpdateAvailable("1.0", "1.0.1")
	assert.ErrorIs(err, common.ErrVersionParse)
	assert.ErrorContains(err, "installed version")

	_, err = IsUpdateAvailable("1.0.0", "latest")
	assert.ErrorIs(err, common.ErrVersionParse)
	assert.ErrorContains(err, "remote version")

	_, err = IsUpdateAvailable("1.0.0", "v2")
	assert.ErrorIs(err, common.ErrVersionParse)

	result, err := IsUpdateAvailable("1.0.0", "1.2.3-")
	assert.ErrorIs(err, common.ErrVersionParse)
	assert.False(result)
}
