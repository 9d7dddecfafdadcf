package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/pipeline"
	"github.com/matzehuels/familytree/pkg/render"
)

// defaultRenderBase names render outputs when -o is not given.
const defaultRenderBase = "family"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path
	formats     []string // svg, dot, png, pdf, json
	diagramFile string   // precomputed layout to draw instead of the store
	render      render.Options
	layout      layoutFlags
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family diagram to SVG, DOT, PNG, PDF or JSON",
		Long: `Render the family diagram.

By default the layout is computed from the store. With --diagram, a file
written by 'layout' is drawn as is.

  --engine native     hand-built SVG (default)
  --engine graphviz   Graphviz neato with pinned positions

PNG always goes through Graphviz. PDF converts the SVG with rsvg-convert,
which must be installed.`,
		Example: `  familytree render
  familytree render -f svg,png -o out/family
  familytree render --diagram family.layout.json -f pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := opts.render.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.diagramFile, "diagram", "", "render a layout file instead of the store")
	cmd.Flags().StringVar(&opts.render.Engine, "engine", render.EngineNative, "svg engine: native, graphviz")
	cmd.Flags().BoolVar(&opts.render.NoLabels, "no-labels", false, `hide the "married" labels`)
	cmd.Flags().Float64Var(&opts.render.Padding, "padding", 0, "margin around the diagram (default 40)")
	cmd.Flags().StringVar(&opts.render.Title, "title", "", "svg title")
	opts.layout.register(cmd)

	return cmd
}

// basePath derives the base output path. Known format extensions on
// output are stripped so "-o family.svg -f svg,png" writes family.svg
// and family.png.
func basePath(output string) string {
	if output == "" {
		return defaultRenderBase
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats(), strings.TrimPrefix(strings.ToLower(ext), ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// runRender produces the diagram and writes every requested format.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.layout.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats: opts.formats,
		Render:  opts.render,
		Refresh: opts.layout.refresh,
		Logger:  c.Logger,
	}

	var (
		artifacts map[string][]byte
		stats     pipeline.Stats
		cached    bool
		warnings  []string
	)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	if opts.diagramFile != "" {
		d, err := diagram.ReadDiagramFile(opts.diagramFile)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts, cached, err = runner.RenderWithCacheInfo(ctx, d, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		stats = pipeline.Stats{
			MemberCount: len(d.Nodes) - len(d.Junctions()),
			NodeCount:   len(d.Nodes),
			EdgeCount:   len(d.Edges),
			Version:     d.Version,
		}
	} else {
		cfg, err := c.config()
		if err != nil {
			spinner.Stop()
			return err
		}
		repo, err := c.repository(ctx)
		if err != nil {
			spinner.Stop()
			return err
		}
		popts.Layout = opts.layout.config(cfg.Layout)
		res, err := runner.Execute(ctx, repo, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts, stats, warnings = res.Artifacts, res.Stats, res.Warnings
		cached = res.CacheInfo.DiagramHit && res.CacheInfo.RenderHit
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(opts.output, opts.formats)
	printSuccess("Rendered %d format(s)", len(artifacts))
	for _, format := range opts.formats {
		path := paths[format]
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		c.Logger.Debug("wrote artifact", "format", format, "bytes", len(artifacts[format]))
		printFile(path)
	}
	printStats(stats.MemberCount, stats.NodeCount, stats.EdgeCount, stats.Version, cached)
	printWarnings(warnings, maxPrintedWarnings)
	return nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
