package commands

import "github.com/alecthomas/kingpin/v2"

// NewExportCommand returns the export parent command.
func NewExportCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("export", "Manage the ledger exports.")
}
