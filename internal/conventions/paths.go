package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default srst data directory name (relative to home).
	DefaultDataDir = ".srst"
	// DBFile is the export ledger database filename.
	DBFile = "srst.db"
)

// DataDir returns the srst data directory of a home directory.
func DataDir(home string) string {
	return filepath.Join(home, DefaultDataDir)
}

// DBPath returns the ledger database path of a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}
