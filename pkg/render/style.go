package render

import "github.com/matzehuels/familytree/pkg/family"

// Card geometry in diagram units.
const (
	CardWidth      = 150.0
	CardHeight     = 80.0
	CardRadius     = 8.0
	JunctionRadius = 5.0
)

// Palette.
const (
	colorText      = "#1f2937"
	colorMuted     = "#6b7280"
	colorConnector = "#64748b"
	colorSpouse    = "#ec4899"
	colorJunction  = "#475569"
	colorBG        = "#ffffff"
)

// cardColors returns the stroke and fill of a member card.
func cardColors(g family.Gender) (stroke, fill string) {
	switch g {
	case family.Male:
		return "#3b82f6", "#dbeafe"
	case family.Female:
		return "#ec4899", "#fce7f3"
	default:
		return "#9ca3af", "#f3f4f6"
	}
}
