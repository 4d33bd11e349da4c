package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rossyndicate/srst/internal/app/exportsync"
	"github.com/rossyndicate/srst/internal/printer"
	"github.com/rossyndicate/srst/internal/storage/sqlite"
)

type ExportSyncCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	engine  *engineFlags

	tile   string
	format string
}

// NewExportSyncCommand returns the export sync command.
func NewExportSyncCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ExportSyncCommand {
	c := &ExportSyncCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("sync", "Refresh the state of the active ledger exports with the engine.")
	c.Cmd.Flag("tile", "Only sync the exports of a WRS-2 tile (PPPRRR).").StringVar(&c.tile)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.engine = registerEngineFlags(c.Cmd)

	return c
}

func (c ExportSyncCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportSyncCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	eng, err := c.engine.newEngine("", logger)
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	svc, err := exportsync.NewService(exportsync.ServiceConfig{
		Engine:     eng,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, exportsync.Request{Tile: c.tile})
	if err != nil {
		return fmt.Errorf("could not sync exports: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintExportList(res.Updated); err != nil {
		return fmt.Errorf("could not print exports: %w", err)
	}

	logger.Infof("Checked %d exports, %d updated, %d missing on engine", res.Checked, len(res.Updated), len(res.Missing))

	return nil
}
