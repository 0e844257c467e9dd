package presets

import (
	"embed"
)

// The configuration presets which are shipped with the binary.
//
//go:embed configs/*.yaml
var Presets embed.FS
