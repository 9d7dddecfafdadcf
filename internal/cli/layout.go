package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// defaultDiagramFile is where layout writes when -o is not given.
const defaultDiagramFile = "family.layout.json"

// maxPrintedWarnings bounds the anomalies listed after a layout.
const maxPrintedWarnings = 5

// layoutFlags are the spacing overrides shared by layout and render.
type layoutFlags struct {
	generationSpacing float64
	nodeSpacing       float64
	coupleSpacing     float64
	noCache           bool
	refresh           bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.generationSpacing, "generation-spacing", 0, "vertical distance between generations (default from config)")
	cmd.Flags().Float64Var(&f.nodeSpacing, "node-spacing", 0, "horizontal step between members (default from config)")
	cmd.Flags().Float64Var(&f.coupleSpacing, "couple-spacing", 0, "distance between spouses above their children (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// config returns base with the flags that were set applied.
func (f *layoutFlags) config(base layout.Config) layout.Config {
	if f.generationSpacing != 0 {
		base.GenerationSpacing = f.generationSpacing
	}
	if f.nodeSpacing != 0 {
		base.NodeSpacing = f.nodeSpacing
	}
	if f.coupleSpacing != 0 {
		base.CoupleSpacing = f.coupleSpacing
	}
	return base
}

// layoutCommand creates the layout command for computing the diagram.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the family diagram layout",
		Long: `Compute the family diagram layout.

The layout assigns every member a generation, places couples side by side
above their children, and adds a junction node under each couple. The
result is a JSON diagram (same format as 'render -f json') that 'render
--diagram' can draw without recomputing.

Results are cached by family content, layout settings and version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultDiagramFile, "output file")
	flags.register(cmd)

	return cmd
}

// runLayout snapshots the store, computes the diagram, and writes it.
func (c *CLI) runLayout(ctx context.Context, output string, flags layoutFlags) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	members, err := repo.All(ctx)
	if err != nil {
		return err
	}
	version, err := repo.Version(ctx)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Layout:  flags.config(cfg.Layout),
		Refresh: flags.refresh,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	d, warnings, cacheHit, err := runner.ComputeDiagramWithCacheInfo(ctx, members, version, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := diagram.WriteDiagramFile(d, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(members), len(d.Nodes), len(d.Edges), version, cacheHit)
	printWarnings(warnings, maxPrintedWarnings)
	printNewline()
	printNextStep("Render", appName+" render --diagram "+output)

	return nil
}
