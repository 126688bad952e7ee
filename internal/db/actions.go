package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/keyheat/internal/common"
	dbpkg "github.com/dtnitsch/keyheat/pkg/db"
	"github.com/dtnitsch/keyheat/pkg/layout"
	"github.com/dtnitsch/keyheat/pkg/report"
	"github.com/urfave/cli/v2"
)

// ListAction prints the stored layouts and the ones available from the
// layout directory and the binary.
func ListAction(c *cli.Context) error {
	database, cfg, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	layouts, err := database.ListLayouts()
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%-20s %-6s %-20s\n", "Name", "Keys", "Updated")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, l := range layouts {
		fmt.Fprintf(w, "%-20s %-6d %-20s\n", l.Name, l.KeyCount, l.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "\nTotal: %d stored layouts\n", len(layouts))

	dirNames, err := layout.NewDirSource(cfg.LayoutDir).Names()
	if err != nil {
		return err
	}
	if len(dirNames) > 0 {
		fmt.Fprintf(w, "In %s: %s\n", cfg.LayoutDir, strings.Join(dirNames, ", "))
	}
	builtin, err := layout.Builtin().Names()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Built in: %s\n", strings.Join(builtin, ", "))
	return nil
}

// ImportAction stores a layout file (JSON or YAML) under its file name or
// --name.
func ImportAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("layout file required. Usage: keyheat layouts import [--name NAME] <file>")
	}

	l, err := layout.ReadFile(c.Args().First(), c.String("name"))
	if err != nil {
		return err
	}

	database, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.SaveLayout(l)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Imported layout %s (%d keys, id %d)\n", l.Name, len(l.Keys), id)
	return nil
}

// ShowAction prints a stored layout in the requested format.
func ShowAction(c *cli.Context) error {
	name, err := layoutNameArg(c)
	if err != nil {
		return err
	}

	database, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	l, err := database.GetLayout(c.Context, name)
	if errors.Is(err, dbpkg.ErrLayoutNotFound) {
		return cli.Exit(err.Error(), common.ExitUserError)
	}
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	if format == report.FormatText {
		fmt.Fprintf(c.App.Writer, "%s (%d keys)\n", l.Name, len(l.Keys))
		for i, k := range l.Keys {
			fmt.Fprintf(c.App.Writer, "%3d. %-12s x=%-6g y=%g\n", i+1, k.Key, k.X, k.Y)
		}
		return nil
	}
	out, err := report.Marshal(l.Keys, format)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, out)
	return nil
}

// DeleteAction removes a stored layout.
func DeleteAction(c *cli.Context) error {
	name, err := layoutNameArg(c)
	if err != nil {
		return err
	}

	database, _, err := openStore(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteLayout(name); err != nil {
		if errors.Is(err, dbpkg.ErrLayoutNotFound) {
			return cli.Exit(err.Error(), common.ExitUserError)
		}
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted layout %s\n", name)
	return nil
}
