package logger

import "time"

// Config holds the logger configuration.
type Config struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level string

	// Environment determines output format (development = console, production = JSON)
	Environment string

	// EnableConsole enables console output
	EnableConsole bool

	// EnableAudit enables the SQLite audit sink
	EnableAudit bool

	// AuditDBPath is the path to the SQLite database file
	AuditDBPath string

	// BufferSize is the channel buffer for async audit writes
	BufferSize int

	// RetentionDays is the number of days to keep audit entries
	RetentionDays int

	// FlushInterval is how often buffered entries are flushed
	FlushInterval time.Duration

	// BatchSize is the maximum number of entries written per batch
	BatchSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		Environment:   "development",
		EnableConsole: true,
		EnableAudit:   false,
		AuditDBPath:   "./data/audit.db",
		BufferSize:    1000,
		RetentionDays: 7,
		FlushInterval: 100 * time.Millisecond,
		BatchSize:     100,
	}
}
