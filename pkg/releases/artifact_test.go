package releases

import (
	"testing"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestSelectArtifactTakesFirstMatch(t *testing.T) {
	assert := assert.New(t)

	downloadUrl, err := SelectArtifact([]*common.Asset{
		{Name: "readme.md", DownloadUrl: "https://example.com/readme.md"},
		{Name: "first.aseprite-extension", DownloadUrl: "https://example.com/first"},
		{Name: "second.aseprite-extension", DownloadUrl: "https://example.com/second"},
	})
	assert.NoError(err)
	assert.Equal("https://example.com/first", downloadUrl)
}

func TestSelectArtifactNotFound(t *testing.T) {
	assert := assert.New(t)

	_, err := SelectArtifact(nil)
	assert.ErrorIs(err, common.ErrArtifactNotFound)

	_, err = SelectArtifact([]*common.Asset{})
	assert.ErrorIs(err, common.ErrArtifactNotFound)

	_, err = SelectArtifact([]*common.Asset{
		{Name: "tiles.zip", DownloadUrl: "https://example.com/tiles.zip"},
		{Name: "tiles.aseprite-extension.sig", DownloadUrl: "https://example.com/tiles.sig"},
		nil,
	})
	assert.ErrorIs(err, common.ErrArtifactNotFound)
}
