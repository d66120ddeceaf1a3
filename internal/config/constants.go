package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./novelzone.db"

	// DefaultReaderID is the placeholder reader until real sessions exist
	DefaultReaderID = 1
)

// Supported storage engines
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
