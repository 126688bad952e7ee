package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/keyheat/internal/analyze"
	"github.com/dtnitsch/keyheat/internal/db"
	"github.com/dtnitsch/keyheat/internal/interactive"
	"github.com/dtnitsch/keyheat/internal/record"
	"github.com/dtnitsch/keyheat/models"
	"github.com/dtnitsch/keyheat/pkg/help"
	"github.com/urfave/cli/v2"
)

// exitInternal is used for failures that are not the user's to fix.
const exitInternal = 2

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitInternal)
	}
}

func newApp() *cli.App {
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: text, yaml or json",
		Value:   "text",
	}
	workersFlag := &cli.IntFlag{
		Name:    "workers",
		Usage:   "number of concurrent log readers",
		EnvVars: []string{"KEYHEAT_WORKERS"},
	}
	layoutFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "layouts",
			Aliases: []string{"l"},
			Usage:   "comma-separated layout names, composed in order",
			EnvVars: []string{"KEYHEAT_LAYOUTS"},
		},
		&cli.StringFlag{
			Name:    "layout-dir",
			Usage:   "directory of <name>.json / <name>.yaml layout files",
			EnvVars: []string{"KEYHEAT_LAYOUT_DIR"},
		},
		&cli.StringFlag{
			Name:    "layout-url",
			Usage:   "base URL serving <name>.json layout files",
			EnvVars: []string{"KEYHEAT_LAYOUT_URL"},
		},
		&cli.StringFlag{
			Name:    "db",
			Usage:   "SQLite layout store (default: next to the binary)",
			EnvVars: []string{"KEYHEAT_DB"},
		},
	}
	heatmapFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "color strategy: lightness or hue",
			EnvVars: []string{"KEYHEAT_STRATEGY"},
		},
		&cli.StringFlag{
			Name:    "scope",
			Usage:   "color scale maximum: global or layout",
			EnvVars: []string{"KEYHEAT_SCOPE"},
		},
	}

	return &cli.App{
		Name:  "keyheat",
		Usage: "Analyze key-press logs: key frequencies, key pairs and keyboard heatmaps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				Value:   models.DefaultConfigFile,
				EnvVars: []string{"KEYHEAT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug details",
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "message language (en, ja); empty prints both",
				EnvVars: []string{"KEYHEAT_LOCALE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Print key frequencies for one or more logs",
				ArgsUsage: "<log file or directory>...",
				Flags:     []cli.Flag{formatFlag, workersFlag},
				Action:    analyze.AnalyzeAction,
			},
			{
				Name:      "bigrams",
				Usage:     "Print the most frequent adjacent key pairs",
				ArgsUsage: "<log file or directory>...",
				Flags: []cli.Flag{
					formatFlag,
					workersFlag,
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "number of pairs to show; 0 shows all",
						EnvVars: []string{"KEYHEAT_TOP"},
					},
				},
				Action: analyze.BigramsAction,
			},
			{
				Name:      "heatmap",
				Usage:     "Color each layout key by how often it was pressed",
				ArgsUsage: "<log file or directory>...",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:  "png",
						Usage: "write the heatmap to a PNG file",
					},
					&cli.BoolFlag{
						Name:    "terminal",
						Aliases: []string{"t"},
						Usage:   "draw in the terminal (default when no other output is chosen)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "also print the composition as yaml or json",
					},
					workersFlag,
				}, heatmapFlags...), layoutFlags...),
				Action: analyze.HeatmapAction,
			},
			{
				Name:  "layouts",
				Usage: "Manage layouts in the SQLite layout store",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored, directory and built-in layouts",
						Flags:  layoutFlags,
						Action: db.ListAction,
					},
					{
						Name:      "import",
						Usage:     "Store a JSON or YAML layout file",
						ArgsUsage: "<file>",
						Flags: append([]cli.Flag{
							&cli.StringFlag{
								Name:  "name",
								Usage: "layout name (default: file name without extension)",
							},
						}, layoutFlags...),
						Action: db.ImportAction,
					},
					{
						Name:      "show",
						Usage:     "Print a stored layout",
						ArgsUsage: "<name>",
						Flags:     append([]cli.Flag{formatFlag}, layoutFlags...),
						Action:    db.ShowAction,
					},
					{
						Name:      "delete",
						Usage:     "Remove a stored layout",
						ArgsUsage: "<name>",
						Flags:     layoutFlags,
						Action:    db.DeleteAction,
					},
				},
			},
			{
				Name:  "record",
				Usage: "Record key presses in this terminal to a log",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "directory for recordings and their index.yaml",
						Value: "recordings",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "append to this log instead of a new file in --dir",
					},
					&cli.DurationFlag{
						Name:  "flush",
						Usage: "how often buffered keys are written",
					},
				},
				Action: record.RecordAction,
			},
			{
				Name:      "interactive",
				Aliases:   []string{"i"},
				Usage:     "Start a prompt that keeps the analysis between commands",
				ArgsUsage: "[log file or directory]",
				Flags:     append(append([]cli.Flag{workersFlag}, heatmapFlags...), layoutFlags...),
				Action:    interactive.InteractiveAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}
