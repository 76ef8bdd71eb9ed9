package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

// Program is a linked program built from a vertex and fragment file pair.
type Program struct {
	ID uint32

	src      Source
	vertName string
	fragName string
}

// Load reads and links a program from src.
func Load(src Source, vertName, fragName string) (*Program, error) {
	p := &Program{src: src, vertName: vertName, fragName: fragName}
	id, err := p.build()
	if err != nil {
		return nil, err
	}
	p.ID = id
	logger.Debug("shader program created",
		zap.Uint32("program", id),
		zap.String("source", src.Origin()),
	)
	return p, nil
}

// Reload rebuilds the program from its sources. On failure the previous
// program stays in place and the error carries the GLSL log.
func (p *Program) Reload() error {
	id, err := p.build()
	if err != nil {
		return err
	}
	old := p.ID
	p.ID = id
	if old != 0 {
		gl.DeleteProgram(old)
	}
	logger.Info("shader program reloaded",
		zap.Uint32("program", id),
		zap.String("source", p.src.Origin()),
	)
	return nil
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (p *Program) build() (uint32, error) {
	vert, err := p.src.Read(p.vertName)
	if err != nil {
		return 0, err
	}
	frag, err := p.src.Read(p.fragName)
	if err != nil {
		return 0, err
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return 0, fmt.Errorf("build %s + %s: %w", p.vertName, p.fragName, err)
	}
	return id, nil
}
