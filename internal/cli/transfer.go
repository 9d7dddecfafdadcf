package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/errors"
	fio "github.com/matzehuels/familytree/pkg/io"
)

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the whole family with a JSON or YAML file",
		Long: `Replace the whole family with the members in FILE.

The file is a JSON (or .yaml/.yml) array of members. It is validated before
anything changes: on any problem the current family is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *CLI) runImport(ctx context.Context, path string, yes bool) error {
	prog := newProgress(c.Logger)

	members, err := fio.Import(path)
	if err != nil {
		var fe *errors.ImportFormatError
		if stderrors.As(err, &fe) {
			printError("%s is not a valid family file", path)
			for _, p := range fe.Problems {
				printDetail("%s", p)
			}
			printNextStep("Fix the file and retry", appName+" import "+path)
		}
		return err
	}

	if !yes {
		ok, err := confirm(fmt.Sprintf("Replace all current family data with %d members?", len(members)))
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	if err := repo.ReplaceAll(ctx, members); err != nil {
		return err
	}
	version, _ := repo.Version(ctx)
	prog.done(fmt.Sprintf("Imported %d members", len(members)), "version", version)

	printSuccess("Imported %d members", len(members))
	printFile(path)
	return nil
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the family as JSON or YAML",
		Long: `Write the family to FILE, or to stdout when FILE is omitted. The format
follows the file extension unless --format is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runExport(cmd.Context(), path, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default: from extension, else json)")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, path, format string) error {
	f := fio.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = fio.ParseFormat(format); err != nil {
			return err
		}
	}

	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}
	members, err := repo.All(ctx)
	if err != nil {
		return err
	}

	if path == "" {
		return fio.Write(members, os.Stdout, f)
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	if err := fio.Write(members, out, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}

	printSuccess("Exported %d members", len(members))
	printFile(path)
	return nil
}
