package releases

import (
	"fmt"
	"strings"

	"github.com/roemer/extupdate/pkg/common"
)

// Gets the download url of the first asset which is an installable bundle.
func SelectArtifact(assets []*common.Asset) (string, error) {
	for _, asset := range assets {
		if asset == nil {
			continue
		}
		if strings.HasSuffix(strings.ToLower(asset.Name), common.BUNDLE_FILE_EXTENSION) && asset.DownloadUrl != "" {
			return asset.DownloadUrl, nil
		}
	}
	return "", fmt.Errorf("%w: none of the %d assets ends with '%s'", common.ErrArtifactNotFound, len(assets), common.BUNDLE_FILE_EXTENSION)
}
