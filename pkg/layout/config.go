package layout

import "github.com/matzehuels/familytree/pkg/errors"

// Config holds the spacing constants of the layout, in diagram units.
type Config struct {
	// GenerationSpacing is the vertical distance between generation bands.
	GenerationSpacing float64 `toml:"generation_spacing" json:"generation_spacing"`
	// NodeSpacing is the horizontal step between adjacent members.
	NodeSpacing float64 `toml:"node_spacing" json:"node_spacing"`
	// SiblingGroupSpacing is the extra gap between sibling groups.
	SiblingGroupSpacing float64 `toml:"sibling_group_spacing" json:"sibling_group_spacing"`
	// CoupleSpacing is the distance between spouses placed over their
	// children. It leaves room for the "married" label.
	CoupleSpacing float64 `toml:"couple_spacing" json:"couple_spacing"`
	// SpouseOffset is the distance between spouses without placed children.
	SpouseOffset float64 `toml:"spouse_offset" json:"spouse_offset"`
	// MinSpaceForParents is the minimum width reserved per sibling group so
	// a couple fits above it.
	MinSpaceForParents float64 `toml:"min_space_for_parents" json:"min_space_for_parents"`
	// BaseOffset is both the starting x cursor and the y offset of band 0.
	BaseOffset float64 `toml:"base_offset" json:"base_offset"`
	// NodeHeight is the rendered height of a member card.
	NodeHeight float64 `toml:"node_height" json:"node_height"`
	// JunctionOffset is subtracted from the right parent's x to place a
	// couple's junction.
	JunctionOffset float64 `toml:"junction_offset" json:"junction_offset"`
}

// DefaultConfig returns the standard spacing.
func DefaultConfig() Config {
	return Config{
		GenerationSpacing:   200,
		NodeSpacing:         180,
		SiblingGroupSpacing: 100,
		CoupleSpacing:       280,
		SpouseOffset:        70,
		MinSpaceForParents:  380,
		BaseOffset:          100,
		NodeHeight:          80,
		JunctionOffset:      65,
	}
}

// Validate rejects non-positive spacings and offsets.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"generation_spacing", c.GenerationSpacing},
		{"node_spacing", c.NodeSpacing},
		{"sibling_group_spacing", c.SiblingGroupSpacing},
		{"couple_spacing", c.CoupleSpacing},
		{"spouse_offset", c.SpouseOffset},
		{"min_space_for_parents", c.MinSpaceForParents},
		{"base_offset", c.BaseOffset},
		{"node_height", c.NodeHeight},
		{"junction_offset", c.JunctionOffset},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "layout %s must be positive, got %v", f.name, f.value)
		}
	}
	return nil
}

// WithDefaults fills zero fields from [DefaultConfig]. Zero therefore
// means "default" for callers building a Config in code; explicit zeros in
// a config file are rejected by [Config.Validate] instead.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.GenerationSpacing, d.GenerationSpacing)
	fill(&c.NodeSpacing, d.NodeSpacing)
	fill(&c.SiblingGroupSpacing, d.SiblingGroupSpacing)
	fill(&c.CoupleSpacing, d.CoupleSpacing)
	fill(&c.SpouseOffset, d.SpouseOffset)
	fill(&c.MinSpaceForParents, d.MinSpaceForParents)
	fill(&c.BaseOffset, d.BaseOffset)
	fill(&c.NodeHeight, d.NodeHeight)
	fill(&c.JunctionOffset, d.JunctionOffset)
	return c
}
