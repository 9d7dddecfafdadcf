package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

// generationsCommand creates the generations command, a debugging aid
// for the generation assignment.
func (c *CLI) generationsCommand() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:     "generations",
		Aliases: []string{"gens"},
		Short:   "Show the generation of every member",
		Long: `Show the generation bands, oldest first.

With --trace, every step of the breadth-first walk is printed: the member,
the generation it was reached with, and whether it was reached as a root,
spouse, child or parent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerations(cmd.Context(), trace)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the BFS steps")
	return cmd
}

func (c *CLI) runGenerations(ctx context.Context, trace bool) error {
	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	members, err := repo.All(ctx)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		printInfo("No members yet")
		return nil
	}

	idx := family.Index(members)
	var gens layout.GenerationMap
	if trace {
		fmt.Println(StyleTitle.Render("Trace"))
		gens = layout.TraceGenerations(members, func(s layout.Step) {
			fmt.Println("  " + formatStep(s, idx))
		})
		printNewline()
	} else {
		gens = layout.AssignGenerations(members)
	}

	for g, band := range layout.Bands(members, gens) {
		names := make([]string, len(band))
		for i, id := range band {
			m := idx[id]
			names[i] = genderStyle(m.Gender).Render(m.Name)
		}
		printKeyValue(fmt.Sprintf("gen %d", g), strings.Join(names, StyleDim.Render(", ")))
	}
	return nil
}

// formatStep renders one BFS step, e.g. "ada  gen 0  via root".
func formatStep(s layout.Step, idx map[string]*family.Member) string {
	name := s.ID
	if m, ok := idx[s.ID]; ok {
		name = m.Name
	}
	line := fmt.Sprintf("%-20s gen %-3d via %s", name, s.Generation, s.Via)
	switch {
	case s.Revisit && s.Lowered:
		line += StyleWarning.Render("  revisit, lowered")
	case s.Revisit:
		line += StyleDim.Render("  revisit")
	}
	return line
}
