package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/shelfsync/internal/config"
	"github.com/mrlokans/shelfsync/internal/tasks"
)

// PruneAuditCommand deletes audit events older than the retention period.
type PruneAuditCommand struct {
	DatabasePath  string
	RetentionDays int
	Verbose       bool
}

// NewPruneAuditCommand creates a new PruneAuditCommand
func NewPruneAuditCommand() *PruneAuditCommand {
	return &PruneAuditCommand{}
}

// ParseFlags parses command line flags
func (cmd *PruneAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("prune-audit", flag.ExitOnError)

	defaultDB := os.Getenv("DATABASE_PATH")
	if defaultDB == "" {
		defaultDB = config.DefaultDatabasePath
	}

	fs.StringVar(&cmd.DatabasePath, "db", defaultDB, "Path to the catalog database file")
	fs.IntVar(&cmd.RetentionDays, "days", tasks.DefaultAuditRetentionDays, "Keep events newer than this many days")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s prune-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete audit events older than the retention period.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s prune-audit -days 7\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.RetentionDays <= 0 {
		return fmt.Errorf("-days must be positive, got %d", cmd.RetentionDays)
	}
	return nil
}

// Run executes the prune
func (cmd *PruneAuditCommand) Run() error {
	db, auditService, err := openCatalog(cmd.DatabasePath, cmd.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := tasks.RunAuditCleanup(auditService, cmd.RetentionDays)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d audit events older than %d days\n", deleted, cmd.RetentionDays)
	return nil
}
