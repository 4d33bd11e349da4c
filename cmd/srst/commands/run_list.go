package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/app/runlist"
	"github.com/rossyndicate/srst/internal/printer"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

type RunListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	limit  int
	format string
}

// NewRunListCommand returns the run list command.
func NewRunListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *RunListCommand {
	c := &RunListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the latest acquisition runs.")
	c.Cmd.Flag("limit", "Maximum number of runs, negative lists all.").Default("20").IntVar(&c.limit)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c RunListCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := runlist.NewService(runlist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	runs, err := svc.Run(ctx, runlist.Request{Limit: c.limit})
	if err != nil {
		return fmt.Errorf("could not list runs: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintRunList(runs); err != nil {
		return fmt.Errorf("could not print runs: %w", err)
	}

	return nil
}
