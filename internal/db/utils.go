package db

import (
	"fmt"

	"github.com/dtnitsch/keyheat/internal/common"
	"github.com/dtnitsch/keyheat/models"
	dbpkg "github.com/dtnitsch/keyheat/pkg/db"
	"github.com/urfave/cli/v2"
)

// openStore opens the layout database named by --db or the config file,
// falling back to the file next to the binary.
func openStore(c *cli.Context) (*dbpkg.DB, *models.Config, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	database, err := dbpkg.Open(cfg.LayoutDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, cfg, nil
}

// layoutNameArg returns the first argument, or an error naming the usage.
func layoutNameArg(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", fmt.Errorf("layout name required. Usage: keyheat layouts %s <name>", c.Command.Name)
	}
	return c.Args().First(), nil
}
