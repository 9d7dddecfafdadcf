package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
	fio "github.com/matzehuels/familytree/pkg/io"
	"github.com/matzehuels/familytree/pkg/store"
)

// memberCommand groups the member CRUD subcommands.
func (c *CLI) memberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members", "m"},
		Short:   "Add, edit, delete and inspect family members",
	}

	cmd.AddCommand(c.memberAddCommand())
	cmd.AddCommand(c.memberEditCommand())
	cmd.AddCommand(c.memberDeleteCommand())
	cmd.AddCommand(c.memberListCommand())
	cmd.AddCommand(c.memberShowCommand())

	return cmd
}

// memberFlags holds the member fields settable from the command line.
type memberFlags struct {
	id     string
	name   string
	gender string
	birth  string
	death  string
	father string
	mother string
	spouse string
}

func (f *memberFlags) register(cmd *cobra.Command, withID bool) {
	if withID {
		cmd.Flags().StringVar(&f.id, "id", "", "member id (default: generated)")
	}
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "gender: male, female or other")
	cmd.Flags().StringVar(&f.birth, "birth", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.death, "death", "", "death date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.father, "father", "", "father's member id")
	cmd.Flags().StringVar(&f.mother, "mother", "", "mother's member id")
	cmd.Flags().StringVar(&f.spouse, "spouse", "", "spouse's member id")
}

// apply copies the flags the user set onto m.
func (f *memberFlags) apply(cmd *cobra.Command, m *family.Member) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = strings.TrimSpace(v)
		}
	}
	set("id", &m.ID, f.id)
	set("name", &m.Name, f.name)
	if cmd.Flags().Changed("gender") {
		m.Gender = family.Gender(strings.ToLower(strings.TrimSpace(f.gender)))
	}
	set("birth", &m.BirthDate, f.birth)
	set("death", &m.DeathDate, f.death)
	set("father", &m.Relations.FatherID, f.father)
	set("mother", &m.Relations.MotherID, f.mother)
	set("spouse", &m.Relations.SpouseID, f.spouse)
}

// checkDates rejects dates without a year; the layout tolerates them but
// the CLI should not create them.
func checkDates(m family.Member) error {
	for _, d := range []string{m.BirthDate, m.DeathDate} {
		if d == "" {
			continue
		}
		if err := errors.ValidateDate(d); err != nil {
			return err
		}
	}
	return nil
}

// memberAddCommand creates the "member add" subcommand.
func (c *CLI) memberAddCommand() *cobra.Command {
	var f memberFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member",
		Long: `Add a member.

Parent and spouse ids are linked on both sides: the new member is added to
its parents' children and becomes its spouse's spouse.`,
		Example: `  familytree member add -n "Ada Lovelace" -g female --birth 1815-12-10
  familytree member add -n "Byron King" -g male --spouse ada`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m family.Member
			f.apply(cmd, &m)
			return c.runMemberAdd(cmd.Context(), m)
		},
	}

	f.register(cmd, true)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("gender")
	return cmd
}

func (c *CLI) runMemberAdd(ctx context.Context, m family.Member) error {
	if m.ID == "" {
		m.ID = family.NewID()
	}
	if err := fio.Validate([]family.Member{m}, "member"); err != nil {
		return err
	}
	if err := checkDates(m); err != nil {
		return err
	}

	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	added, err := repo.Add(ctx, m)
	if err != nil {
		return err
	}

	printSuccess("Added %s", genderStyle(added.Gender).Render(added.Name))
	printDetail("id %s", added.ID)
	return nil
}

// memberEditCommand creates the "member edit" subcommand.
func (c *CLI) memberEditCommand() *cobra.Command {
	var f memberFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change a member's fields or relations",
		Long: `Change a member's fields or relations. Only the given flags change;
pass an empty value (--spouse "") to clear a relation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := c.memberArg(ctx, args)
			if err != nil || id == "" {
				return err
			}
			return c.runMemberEdit(ctx, id, func(m *family.Member) { f.apply(cmd, m) })
		},
	}

	f.register(cmd, false)
	return cmd
}

func (c *CLI) runMemberEdit(ctx context.Context, id string, edit func(*family.Member)) error {
	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	m, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	edit(&m)
	if err := checkDates(m); err != nil {
		return err
	}
	updated, err := repo.Update(ctx, m)
	if err != nil {
		return err
	}
	printSuccess("Updated %s", genderStyle(updated.Gender).Render(updated.Name))
	return nil
}

// memberDeleteCommand creates the "member delete" subcommand.
func (c *CLI) memberDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a member and every reference to it",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := c.memberArg(ctx, args)
			if err != nil || id == "" {
				return err
			}
			return c.runMemberDelete(ctx, id, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *CLI) runMemberDelete(ctx context.Context, id string, yes bool) error {
	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	m, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !yes {
		ok, err := confirm(fmt.Sprintf("Delete %s and unlink their relatives?", m.Name))
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	printSuccess("Deleted %s", m.Name)
	return nil
}

// memberListCommand creates the "member list" subcommand.
func (c *CLI) memberListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all members as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
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
				printNextStep("Add one", appName+` member add -n "Name" -g female`)
				return nil
			}
			fmt.Println(memberTable(members))
			printDetail("%d members", len(members))
			return nil
		},
	}
}

// memberShowCommand creates the "member show" subcommand.
func (c *CLI) memberShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one member with their relatives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := c.memberArg(ctx, args)
			if err != nil || id == "" {
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
			return showMember(members, id)
		},
	}
}

func showMember(members []family.Member, id string) error {
	idx := family.Index(members)
	m, ok := idx[id]
	if !ok {
		return errors.Wrap(errors.ErrCodeMemberNotFound, store.ErrNotFound, "no member with id %q", id)
	}
	describe := func(id string) string {
		if id == "" {
			return "—"
		}
		if r, ok := idx[id]; ok {
			return fmt.Sprintf("%s (%s)", r.Name, r.ID)
		}
		return id + " (missing)"
	}

	fmt.Println(StyleTitle.Render(m.Name) + " " + genderStyle(m.Gender).Render(m.Gender.Symbol()))
	printKeyValue("id", m.ID)
	printKeyValue("gender", string(m.Gender))
	if m.BirthDate != "" {
		printKeyValue("born", m.BirthDate)
	}
	if m.DeathDate != "" {
		printKeyValue("died", m.DeathDate)
	}
	printKeyValue("father", describe(m.Relations.FatherID))
	printKeyValue("mother", describe(m.Relations.MotherID))
	printKeyValue("spouse", describe(m.Relations.SpouseID))
	if len(m.Relations.ChildrenIDs) == 0 {
		printKeyValue("children", "—")
	}
	for i, cid := range m.Relations.ChildrenIDs {
		key := ""
		if i == 0 {
			key = "children"
		}
		printKeyValue(key, describe(cid))
	}
	return nil
}

// memberArg returns args[0], or lets the user pick a member when no id
// was given. An empty id means the user quit the picker.
func (c *CLI) memberArg(ctx context.Context, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	repo, err := c.repository(ctx)
	if err != nil {
		return "", err
	}
	members, err := repo.All(ctx)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "the family is empty")
	}
	return pickMember(members)
}
