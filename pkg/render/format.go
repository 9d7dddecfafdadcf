package render

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// SVG engines.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Formats lists every supported output format.
func Formats() []string {
	return []string{FormatSVG, FormatDOT, FormatPNG, FormatPDF, FormatJSON}
}

// Options controls [Render].
type Options struct {
	// Engine selects the SVG producer: EngineNative (default) or
	// EngineGraphviz.
	Engine string
	// NoLabels hides the "married" spouse labels in native SVG.
	NoLabels bool
	// Padding is the native SVG margin; 0 means the default.
	Padding float64
	// Title is embedded in native SVG output.
	Title string
}

// Validate checks the engine name.
func (o Options) Validate() error {
	switch o.Engine {
	case "", EngineNative, EngineGraphviz:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown render engine %q (want %s or %s)", o.Engine, EngineNative, EngineGraphviz)
}

func (o Options) svgOptions() []SVGOption {
	var opts []SVGOption
	if o.NoLabels {
		opts = append(opts, WithoutLabels())
	}
	if o.Padding > 0 {
		opts = append(opts, WithPadding(o.Padding))
	}
	if o.Title != "" {
		opts = append(opts, WithTitle(o.Title))
	}
	return opts
}

// ValidateFormats checks that every format is supported. Formats are
// matched case-insensitively.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no output format given")
	}
	for _, f := range formats {
		if !slices.Contains(Formats(), strings.ToLower(f)) {
			return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (supported: %s)", f, strings.Join(Formats(), ", "))
		}
	}
	return nil
}

// Render produces one artifact of d in format.
func Render(ctx context.Context, d diagram.Diagram, format string, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case FormatSVG:
		if opts.Engine == EngineGraphviz {
			return RenderGraphviz(ctx, ToDOT(d), FormatSVG)
		}
		return SVG(d, opts.svgOptions()...), nil
	case FormatDOT:
		return []byte(ToDOT(d)), nil
	case FormatPNG:
		return RenderGraphviz(ctx, ToDOT(d), FormatPNG)
	case FormatPDF:
		return ToPDF(ctx, SVG(d, opts.svgOptions()...))
	case FormatJSON:
		return diagram.MarshalDiagram(d)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}
