package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/observability"
)

// Source provides the member snapshot. store.Repository satisfies it.
type Source interface {
	All(ctx context.Context) ([]family.Member, error)
	Version(ctx context.Context) (int64, error)
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// diagramEntry is the cached form of a layout result.
type diagramEntry struct {
	Diagram  diagram.Diagram `json:"diagram"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Execute runs snapshot → layout → render with caching.
func (r *Runner) Execute(ctx context.Context, src Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	members, err := src.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	version, err := src.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	result := &Result{}
	result.Stats.MemberCount = len(members)
	result.Stats.Version = version

	layoutStart := time.Now()
	d, warnings, hit, err := r.ComputeDiagramWithCacheInfo(ctx, members, version, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Warnings = warnings
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(d.Nodes)
	result.Stats.JunctionCount = len(d.Junctions())
	result.Stats.EdgeCount = len(d.Edges)
	result.CacheInfo.DiagramHit = hit
	if data, err := diagram.MarshalDiagram(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"members", len(members),
		"nodes", len(d.Nodes),
		"edges", len(d.Edges),
		"warnings", len(warnings),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeDiagramWithCacheInfo returns the diagram and warnings for members
// at version, from cache when possible, and whether it was a cache hit.
func (r *Runner) ComputeDiagramWithCacheInfo(ctx context.Context, members []family.Member, version int64, opts Options) (diagram.Diagram, []string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Diagram{}, nil, false, err
	}

	membersHash, err := cache.HashJSON(members)
	if err != nil {
		return diagram.Diagram{}, nil, false, err
	}
	key := r.Keyer.DiagramKey(membersHash, opts.DiagramKeyOpts(version))

	if !opts.Refresh {
		var entry diagramEntry
		if err := cache.GetJSON(ctx, r.Cache, key, &entry); err == nil {
			observability.Cache().OnCacheHit(ctx, "diagram")
			opts.Logger.Debug("diagram cache hit", "key", key)
			return entry.Diagram, entry.Warnings, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(members))
	start := time.Now()
	d, warnings := ComputeDiagram(members, version, opts)
	hooks.OnLayoutComplete(ctx, len(d.Nodes), len(warnings), time.Since(start), nil)

	entry := diagramEntry{Diagram: d, Warnings: warnings}
	if err := cache.SetJSON(ctx, r.Cache, key, entry, TTLDiagram); err != nil {
		opts.Logger.Debug("diagram cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "diagram", len(d.Nodes))
	}
	return d, warnings, false, nil
}

// ComputeDiagram is ComputeDiagramWithCacheInfo without the warnings.
func (r *Runner) ComputeDiagram(ctx context.Context, members []family.Member, version int64, opts Options) (diagram.Diagram, bool, error) {
	d, _, hit, err := r.ComputeDiagramWithCacheInfo(ctx, members, version, opts)
	return d, hit, err
}

// RenderWithCacheInfo renders d in every requested format. The bool is
// true when all artifacts came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := diagram.MarshalDiagram(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderArtifacts(ctx, d, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
