package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/app/status"
	"github.com/rossyndicate/srst/internal/engine"
	"github.com/rossyndicate/srst/internal/printer"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	engine  *engineFlags

	nameOrID string
	refresh  bool
	format   string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Get detailed status of an export.")
	c.Cmd.Arg("name-or-id", "Export name or ledger ID.").Required().StringVar(&c.nameOrID)
	c.Cmd.Flag("refresh", "Ask the engine for the task state first.").BoolVar(&c.refresh)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.engine = registerEngineFlags(c.Cmd)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	var eng engine.Engine
	if c.refresh {
		eng, err = c.engine.newEngine("", logger)
		if err != nil {
			return fmt.Errorf("could not create engine: %w", err)
		}
	}

	// Create status service.
	svc, err := status.NewService(status.ServiceConfig{
		Repository: repo,
		Engine:     eng,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute status.
	export, err := svc.Run(ctx, status.Request{
		NameOrID: c.nameOrID,
		Refresh:  c.refresh,
	})
	if err != nil {
		return fmt.Errorf("could not get export status: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintExportStatus(*export); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
