package cli

import (
	"fmt"
	"path/filepath"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfsync/internal/audit"
	"github.com/mrlokans/shelfsync/internal/database"
	auditrepo "github.com/mrlokans/shelfsync/internal/database/audit"
)

// openCatalog opens the catalog database for a one-off command, with the
// gorm logger quietened to warnings.
func openCatalog(path string, verbose bool) (*database.Database, *audit.Service, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := database.NewDatabase(absPath, database.WithLogLevel(level))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, audit.NewService(auditrepo.NewRepository(db.DB)), nil
}
