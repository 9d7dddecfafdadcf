package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/store"
)

var relationKinds = []string{string(store.RelSpouse), string(store.RelFather), string(store.RelMother)}

// relateCommand creates the relate command.
func (c *CLI) relateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relate spouse|father|mother MEMBER RELATIVE",
		Short: "Link two members on both sides",
		Long: `Link two members on both sides.

  relate spouse A B    marries A and B, unlinking any previous spouses
  relate father C F    makes F the father of C
  relate mother C M    makes M the mother of C`,
		Args:      cobra.ExactArgs(3),
		ValidArgs: relationKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRelate(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

// unrelateCommand creates the unrelate command.
func (c *CLI) unrelateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "unrelate spouse|father|mother MEMBER",
		Short:     "Clear a member's spouse, father or mother on both sides",
		Args:      cobra.ExactArgs(2),
		ValidArgs: relationKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRelate(cmd.Context(), args[0], args[1], "")
		},
	}
}

func (c *CLI) runRelate(ctx context.Context, kind, from, to string) error {
	k, ok := store.ParseRelationKind(kind)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown relation %q (want spouse, father or mother)", kind)
	}
	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	if err := repo.SetRelation(ctx, store.Relation{Kind: k, From: from, To: to}); err != nil {
		return err
	}

	m, err := repo.Get(ctx, from)
	if err != nil {
		return err
	}
	if to == "" {
		printSuccess("Cleared %s's %s", m.Name, k)
		return nil
	}
	r, err := repo.Get(ctx, to)
	if err != nil {
		return err
	}
	switch k {
	case store.RelSpouse:
		printSuccess("%s and %s are married", m.Name, r.Name)
	default:
		printSuccess("%s is now %s's %s", r.Name, m.Name, k)
	}
	return nil
}
