package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/app/exportlist"
	"github.com/rossyndicate/srst/internal/model"
	"github.com/rossyndicate/srst/internal/printer"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

type ExportListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	tile   string
	states []string
	format string
}

// NewExportListCommand returns the export list command.
func NewExportListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ExportListCommand {
	c := &ExportListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the ledger exports.")
	c.Cmd.Flag("tile", "Filter by WRS-2 tile (PPPRRR).").StringVar(&c.tile)
	c.Cmd.Flag("state", "Filter by state, repeatable (ready, running, completed, failed, cancelled).").StringsVar(&c.states)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ExportListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	states, err := parseStates(c.states)
	if err != nil {
		return err
	}

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := exportlist.NewService(exportlist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	exports, err := svc.Run(ctx, exportlist.Request{
		Tile:   c.tile,
		States: states,
	})
	if err != nil {
		return fmt.Errorf("could not list exports: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintExportList(exports); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}

func parseStates(raw []string) ([]model.TaskState, error) {
	var states []model.TaskState
	for _, r := range raw {
		state := model.TaskState(strings.ToUpper(strings.TrimSpace(r)))
		switch state {
		case model.TaskStateReady, model.TaskStateRunning, model.TaskStateCompleted, model.TaskStateFailed, model.TaskStateCancelled:
			states = append(states, state)
		default:
			return nil, fmt.Errorf("invalid state filter: %s (must be: ready, running, completed, failed, cancelled)", r)
		}
	}
	return states, nil
}
