package engine

import (
	"fmt"

	"github.com/claude/periodize/internal/models"
	"github.com/claude/periodize/internal/registry"
)

const (
	// DefaultMaxBlocks bounds the iteration range of a single simulation.
	DefaultMaxBlocks = 100
	// DefaultMiniBlockSpacing is the gap in weeks between scheduled mini-blocks.
	DefaultMiniBlockSpacing = 2
)

// Options tunes an Engine. Zero values select the defaults.
type Options struct {
	MaxBlocks             int
	MiniBlockSpacingWeeks int
}

// Engine runs simulations against one registry.
type Engine struct {
	reg       *registry.Registry
	maxBlocks int
	spacing   int
}

// New creates an Engine bound to reg.
func New(reg *registry.Registry, opts Options) *Engine {
	e := &Engine{
		reg:       reg,
		maxBlocks: opts.MaxBlocks,
		spacing:   opts.MiniBlockSpacingWeeks,
	}
	if e.maxBlocks <= 0 {
		e.maxBlocks = DefaultMaxBlocks
	}
	if e.spacing <= 0 {
		e.spacing = DefaultMiniBlockSpacing
	}
	return e
}

// Registry returns the registry the engine was built with.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// MaxBlocks returns the largest program the engine accepts.
func (e *Engine) MaxBlocks() int {
	return e.maxBlocks
}

func (e *Engine) checkSize(program []models.BlockKind) error {
	if len(program) > e.maxBlocks {
		return fmt.Errorf("%w: %d blocks, limit %d", ErrProgramTooLarge, len(program), e.maxBlocks)
	}
	return nil
}

// Open builds an Engine from a registry file, or from the built-in registry
// when registryPath is empty.
func Open(registryPath string, opts Options) (*Engine, error) {
	reg := registry.Default()
	if registryPath != "" {
		var err error
		reg, err = registry.Load(registryPath)
		if err != nil {
			return nil, err
		}
	}
	return New(reg, opts), nil
}
