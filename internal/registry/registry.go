// Package registry holds the fixed domain constants of the simulation:
// abilities with their decay windows and block kinds with their durations.
//
// A Registry is immutable once built and is passed explicitly to the engine,
// so tests can run against synthetic constants.
package registry

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/claude/periodize/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultYAML []byte

// AbilitySpec holds the decay constants of one ability.
type AbilitySpec struct {
	Name                   models.Ability `yaml:"name" json:"name"`
	ResidualDays           int            `yaml:"residual_days" json:"residual_days"`
	MiniBlockRetention     float64        `yaml:"mini_block_retention" json:"mini_block_retention"`
	MiniBlockIntervalWeeks int            `yaml:"mini_block_interval_weeks" json:"mini_block_interval_weeks"`
}

// Phase is a named sub-block inside a block, e.g. an eccentric emphasis.
type Phase struct {
	Name  string `yaml:"name" json:"name"`
	Weeks int    `yaml:"weeks" json:"weeks"`
}

// BlockSpec describes one block kind.
type BlockSpec struct {
	Kind          models.BlockKind      `yaml:"kind" json:"kind"`
	Ability       models.Ability        `yaml:"ability" json:"ability"`
	DurationWeeks int                   `yaml:"duration_weeks" json:"duration_weeks"`
	Intensity     models.IntensityRange `yaml:"intensity" json:"intensity"`
	Phases        []Phase               `yaml:"phases,omitempty" json:"phases,omitempty"`
	Exercises     []string              `yaml:"exercises,omitempty" json:"exercises,omitempty"`
	Focus         []string              `yaml:"focus,omitempty" json:"focus,omitempty"`
}

// Registry is the closed set of abilities and block kinds.
type Registry struct {
	abilities []AbilitySpec
	blocks    []BlockSpec

	abilityIndex map[models.Ability]int
	blockIndex   map[models.BlockKind]int
}

type document struct {
	Abilities []AbilitySpec `yaml:"abilities"`
	Blocks    []BlockSpec   `yaml:"blocks"`
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("registry: built-in definition is invalid: %v", err))
	}
	return r
}

// Load reads a registry definition from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	return New(doc.Abilities, doc.Blocks)
}

// New validates the definitions and builds a registry. Declaration order is
// preserved by Abilities and Blocks.
func New(abilities []AbilitySpec, blocks []BlockSpec) (*Registry, error) {
	r := &Registry{
		abilities:    make([]AbilitySpec, 0, len(abilities)),
		blocks:       make([]BlockSpec, 0, len(blocks)),
		abilityIndex: make(map[models.Ability]int, len(abilities)),
		blockIndex:   make(map[models.BlockKind]int, len(blocks)),
	}

	for _, a := range abilities {
		if err := validateAbility(a); err != nil {
			return nil, err
		}
		if _, dup := r.abilityIndex[a.Name]; dup {
			return nil, invalid("ability", string(a.Name), "declared twice")
		}
		r.abilityIndex[a.Name] = len(r.abilities)
		r.abilities = append(r.abilities, a)
	}

	for _, b := range blocks {
		if err := validateBlock(b); err != nil {
			return nil, err
		}
		if _, ok := r.abilityIndex[b.Ability]; !ok {
			return nil, unknown("ability", string(b.Ability))
		}
		if _, dup := r.blockIndex[b.Kind]; dup {
			return nil, invalid("block kind", string(b.Kind), "declared twice")
		}
		b.Phases = append([]Phase(nil), b.Phases...)
		b.Exercises = append([]string(nil), b.Exercises...)
		b.Focus = append([]string(nil), b.Focus...)
		r.blockIndex[b.Kind] = len(r.blocks)
		r.blocks = append(r.blocks, b)
	}

	return r, nil
}

func validateAbility(a AbilitySpec) error {
	name := string(a.Name)
	switch {
	case name == "":
		return invalid("ability", name, "name is required")
	case a.ResidualDays <= 0:
		return invalid("ability", name, "residual_days must be positive")
	case a.MiniBlockRetention <= 0 || a.MiniBlockRetention > 1:
		return invalid("ability", name, "mini_block_retention must be in (0, 1]")
	case a.MiniBlockIntervalWeeks <= 0:
		return invalid("ability", name, "mini_block_interval_weeks must be positive")
	}
	return nil
}

func validateBlock(b BlockSpec) error {
	kind := string(b.Kind)
	switch {
	case kind == "":
		return invalid("block kind", kind, "kind is required")
	case b.DurationWeeks <= 0:
		return invalid("block kind", kind, "duration_weeks must be positive")
	case b.Intensity.Min > b.Intensity.Max:
		return invalid("block kind", kind, "intensity min exceeds max")
	}

	if len(b.Phases) == 0 {
		return nil
	}
	total := 0
	for _, p := range b.Phases {
		if p.Weeks <= 0 {
			return invalid("block kind", kind, fmt.Sprintf("phase %q must span at least one week", p.Name))
		}
		total += p.Weeks
	}
	if total != b.DurationWeeks {
		return invalid("block kind", kind, fmt.Sprintf("phases span %d weeks, duration is %d", total, b.DurationWeeks))
	}
	return nil
}

// Ability returns the constants for an ability.
func (r *Registry) Ability(name models.Ability) (AbilitySpec, error) {
	i, ok := r.abilityIndex[name]
	if !ok {
		return AbilitySpec{}, unknown("ability", string(name))
	}
	return r.abilities[i], nil
}

// Block returns the definition of a block kind.
func (r *Registry) Block(kind models.BlockKind) (BlockSpec, error) {
	i, ok := r.blockIndex[kind]
	if !ok {
		return BlockSpec{}, unknown("block kind", string(kind))
	}
	return r.blocks[i], nil
}

// Abilities returns all abilities in declaration order.
func (r *Registry) Abilities() []AbilitySpec {
	return append([]AbilitySpec(nil), r.abilities...)
}

// Blocks returns all block kinds in declaration order.
func (r *Registry) Blocks() []BlockSpec {
	out := make([]BlockSpec, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// MaxResidualDays is the longest residual window of any ability.
func (r *Registry) MaxResidualDays() int {
	longest := 0
	for _, a := range r.abilities {
		if a.ResidualDays > longest {
			longest = a.ResidualDays
		}
	}
	return longest
}

// ParseProgram converts raw identifiers into a program, rejecting the first
// one that is not a registered block kind.
func (r *Registry) ParseProgram(ids []string) ([]models.BlockKind, error) {
	program := make([]models.BlockKind, 0, len(ids))
	for _, id := range ids {
		kind := models.BlockKind(id)
		if _, ok := r.blockIndex[kind]; !ok {
			return nil, unknown("block kind", id)
		}
		program = append(program, kind)
	}
	return program, nil
}
