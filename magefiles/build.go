//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads modules and builds the viewer into bin/.
func (Build) Viewer() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binaryPath(), mainPkg), withEnv("CGO_ENABLED=1"), withStream())
	return err
}

// Validates the globe shaders with glslangValidator when it is installed.
func (Build) Shaders() error {
	for _, name := range []string{"globe.vert", "globe.frag"} {
		if _, err := executeCmd("glslangValidator", withArgs(name), withDir(shaderDir), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Runs vet and the unit tests.
func Test() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
