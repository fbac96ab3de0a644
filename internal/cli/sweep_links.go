package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/shelfsync/internal/config"
	"github.com/mrlokans/shelfsync/internal/database/links"
	"github.com/mrlokans/shelfsync/internal/tasks"
)

// SweepLinksCommand removes book_authors rows whose book or author is gone.
type SweepLinksCommand struct {
	DatabasePath string
	DryRun       bool
	Verbose      bool
}

// NewSweepLinksCommand creates a new SweepLinksCommand
func NewSweepLinksCommand() *SweepLinksCommand {
	return &SweepLinksCommand{}
}

// ParseFlags parses command line flags
func (cmd *SweepLinksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sweep-links", flag.ExitOnError)

	defaultDB := os.Getenv("DATABASE_PATH")
	if defaultDB == "" {
		defaultDB = config.DefaultDatabasePath
	}

	fs.StringVar(&cmd.DatabasePath, "db", defaultDB, "Path to the catalog database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Only count dangling links, do not delete them")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep-links [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove book/author links that point at a deleted book or author.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sweep-links\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s sweep-links -db ./shelfsync.db -dry-run\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the sweep
func (cmd *SweepLinksCommand) Run() error {
	db, auditService, err := openCatalog(cmd.DatabasePath, cmd.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := links.NewRepository(db.DB)

	if cmd.DryRun {
		dangling, err := repo.CountDanglingLinks()
		if err != nil {
			return fmt.Errorf("failed to count dangling links: %w", err)
		}
		fmt.Printf("Found %d dangling links (dry run, nothing deleted)\n", dangling)
		return nil
	}

	removed, err := tasks.RunLinkSweep(repo, auditService)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d dangling links\n", removed)
	return nil
}
