// Package templates bundles the project templates shipped with the binary.
package templates

import (
	"embed"

	"github.com/spf13/afero"
)

// DefaultTemplateDirectoryConstant names the bundled template used when no template directory is configured.
const DefaultTemplateDirectoryConstant = "helloworld"

//go:embed all:helloworld
var bundled embed.FS

// FileSystem exposes the bundled templates as a read-only filesystem.
func FileSystem() afero.Fs {
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: bundled})
}
