package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./shelfsync.db"
)

// Default maintenance schedules in cron format.
const (
	DefaultLinkSweepSchedule  = "30 3 * * *" // Daily at 03:30
	DefaultAuditPruneSchedule = "0 4 * * *"  // Daily at 04:00
)
