// Package pipeline runs the snapshot → layout → render pipeline for a
// family tree.
//
// The CLI calls this package instead of wiring the layout engine and the
// renderer itself, so caching and instrumentation are applied the same
// way for every command.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Snapshot: copy the members and layout version out of the store
//  2. Layout: run [layout.Compute] to get a positioned diagram
//  3. Render: produce artifacts in the requested formats
//
// Layout and render results are cached by content hash. A diagram key
// covers the members, the layout config and the version; an artifact key
// covers the diagram and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, repo, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	d, hit, err := runner.ComputeDiagram(ctx, members, version, opts)
//	artifacts, err := runner.Render(ctx, d, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

// Cache lifetimes. Keys are content hashes, so these only bound disk use.
const (
	TTLDiagram  = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// DefaultFormat is rendered when Options.Formats is empty.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Layout holds the spacing constants. Zero fields take defaults.
	Layout layout.Config `json:"layout"`

	// Formats lists the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// Render configures the renderer.
	Render render.Options `json:"render"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Reporter receives layout anomalies when the layout is computed.
	// Cached diagrams replay nothing; their warnings are in the Result.
	Reporter layout.Reporter `json:"-"`

	// Logger for stage progress. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults fills defaults and validates every field.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout fills layout defaults and validates the config.
func (o *Options) ValidateForLayout() error {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Layout.Validate()
}

// SetRenderDefaults normalizes the format list.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender fills render defaults and checks formats and engine.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.Render.Validate()
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	return render.ValidateFormats(formats)
}

// DiagramKeyOpts returns the cache key inputs besides the members.
func (o *Options) DiagramKeyOpts(version int64) cache.DiagramKeyOpts {
	h, _ := cache.HashJSON(o.Layout)
	return cache.DiagramKeyOpts{ConfigHash: h, Version: version}
}

// ArtifactKeyOpts returns the cache key inputs besides the diagram.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Engine:  o.Render.Engine,
		Labels:  !o.Render.NoLabels,
		Padding: o.Render.Padding,
		Title:   o.Render.Title,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the positioned diagram.
	Diagram diagram.Diagram

	// DiagramHash is the content hash of the serialized diagram.
	DiagramHash string

	// Warnings are the layout anomalies, one line each.
	Warnings []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	MemberCount   int
	NodeCount     int
	JunctionCount int
	EdgeCount     int
	Version       int64
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiagramHit bool // Whether the diagram came from cache
	RenderHit  bool // Whether all artifacts came from cache
}
