// Package shaders provides the embedded GLSL sources for the globe.
package shaders

import (
	"embed"
	"io/fs"
)

// File names of the globe program.
const (
	VertexFile   = "globe.vert"
	FragmentFile = "globe.frag"
)

//go:embed globe.vert globe.frag
var files embed.FS

// FS returns the embedded shader files.
func FS() fs.FS {
	return files
}
