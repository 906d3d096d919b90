package logger

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSink persists log entries to SQLite asynchronously. Entries are
// buffered on a channel and flushed in batches so request paths never block
// on disk I/O.
type SQLiteSink struct {
	db       *sql.DB
	buffer   chan Entry
	done     chan struct{}
	wg       sync.WaitGroup
	config   Config
	stopOnce sync.Once
}

const sinkSchema = `
CREATE TABLE IF NOT EXISTS log_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp  INTEGER NOT NULL,
	level      TEXT NOT NULL,
	message    TEXT NOT NULL,
	caller     TEXT,
	fields     TEXT,
	request_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_log_entries_timestamp ON log_entries(timestamp);
`

// NewSQLiteSink creates a new SQLite sink and starts its flush loop.
func NewSQLiteSink(cfg Config) (*SQLiteSink, error) {
	dir := filepath.Dir(cfg.AuditDBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cfg.AuditDBPath)
	if err != nil {
		return nil, err
	}

	// WAL allows the flush goroutine to write while readers poke around.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(sinkSchema); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteSink{
		db:     db,
		buffer: make(chan Entry, cfg.BufferSize),
		done:   make(chan struct{}),
		config: cfg,
	}

	s.wg.Add(1)
	go s.flushLoop()

	return s, nil
}

// Write enqueues an entry. If the buffer is full the entry is dropped
// rather than blocking the caller.
func (s *SQLiteSink) Write(entry Entry) error {
	if s == nil {
		return nil
	}
	select {
	case s.buffer <- entry:
	default:
	}
	return nil
}

// Close flushes remaining entries and closes the database. Safe on a nil
// receiver so a typed-nil sink handed to the logger cannot panic Sync.
func (s *SQLiteSink) Close() error {
	if s == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return s.db.Close()
}

// StartCleanupJob deletes entries older than the retention window once a day
// until ctx is cancelled.
func (s *SQLiteSink) StartCleanupJob(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays).UnixMilli()
				_, _ = s.db.Exec(`DELETE FROM log_entries WHERE timestamp < ?`, cutoff)
			}
		}
	}()
}

func (s *SQLiteSink) flushLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]Entry, 0, s.config.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-s.buffer:
			batch = append(batch, entry)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case entry := <-s.buffer:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *SQLiteSink) writeBatch(batch []Entry) {
	tx, err := s.db.Begin()
	if err != nil {
		return
	}

	stmt, err := tx.Prepare(`
		INSERT INTO log_entries (timestamp, level, message, caller, fields, request_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, entry := range batch {
		fieldsJSON, _ := json.Marshal(entry.Fields)
		_, _ = stmt.Exec(
			entry.Timestamp,
			entry.Level,
			entry.Message,
			entry.Caller,
			string(fieldsJSON),
			entry.RequestID,
		)
	}

	_ = tx.Commit()
}
