package box3d

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

/// A tree definition holds the data needed to construct a tree. You can
/// safely re-use tree definitions. Fields left at zero after decoding are
/// invalid, start from MakeB3TreeDef.
type B3TreeDef struct {
	/// Maximum children per node of the scalar tree, in [2, B3_maxChildren].
	/// The bundle tree always uses B3_laneCount.
	Width int `yaml:"width"`

	/// Storage reserved up front for leaves.
	InitialLeafCapacity int `yaml:"initialLeafCapacity"`

	/// Storage reserved up front for nodes (per level for the scalar tree).
	InitialNodeCapacity int `yaml:"initialNodeCapacity"`

	/// Nodes visited by one RefitAndRefine call. Zero disables refinement.
	RefinementBudget int `yaml:"refinementBudget"`

	/// Lane group count at or below which streaming self-overlap falls back
	/// to one leaf at a time.
	StreamingFallbackGroups int `yaml:"streamingFallbackGroups"`

	/// Logger for structural events. Nil means the package logger.
	Logger logrus.FieldLogger `yaml:"-"`
}

func MakeB3TreeDef() B3TreeDef {
	return B3TreeDef{
		Width:                   B3_defaultWidth,
		InitialLeafCapacity:     B3_defaultLeafCapacity,
		InitialNodeCapacity:     B3_defaultNodeCapacity,
		RefinementBudget:        B3_defaultRefinementBudget,
		StreamingFallbackGroups: B3_streamingFallbackGroups,
	}
}

/// Decode YAML settings on top of the defaults.
func ParseB3TreeDef(data []byte) (B3TreeDef, error) {
	def := MakeB3TreeDef()
	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("decoding tree def: %w", err)
	}
	if err := def.Validate(); err != nil {
		return def, err
	}
	return def, nil
}

func (def B3TreeDef) Validate() error {
	if def.Width < 2 || def.Width > B3_maxChildren {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, def.Width)
	}
	if def.InitialLeafCapacity <= 0 {
		return fmt.Errorf("%w: initial leaf capacity %d", ErrInvalidCapacity, def.InitialLeafCapacity)
	}
	if def.InitialNodeCapacity <= 0 {
		return fmt.Errorf("%w: initial node capacity %d", ErrInvalidCapacity, def.InitialNodeCapacity)
	}
	if def.RefinementBudget < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBudget, def.RefinementBudget)
	}
	if def.StreamingFallbackGroups < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFallback, def.StreamingFallbackGroups)
	}
	return nil
}

func (def B3TreeDef) logger() logrus.FieldLogger {
	if def.Logger != nil {
		return def.Logger
	}
	return b3Log
}
