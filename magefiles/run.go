//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the viewer.
func (Run) Viewer() error {
	mg.Deps(Build.Viewer)
	fmt.Println("Run viewer...")
	_, err := executeCmd(binaryPath(), withStream())
	return err
}

// Starts the viewer with shaders loaded from disk and hot reload enabled.
func (Run) Dev() error {
	fmt.Println("Run viewer with shader hot reload...")
	_, err := executeCmd("go", withArgs("run", mainPkg, "-debug", "-windowed", "-shaders", shaderDir), withStream())
	return err
}
