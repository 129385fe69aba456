package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // cgo sqlite driver
	_ "modernc.org/sqlite"          // pure Go sqlite driver
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps the résumé database connection.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to the résumé database and applies migrations.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty dsn for %s", driver)
	}
	var dialect Dialect
	switch driver {
	case DriverSQLite, DriverSQLite3:
		dialect = DialectSQLite
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(driver, dsn)
	case DriverPostgres:
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unknown database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if dialect == DialectSQLite {
		// one writer at a time; avoids SQLITE_BUSY from the pool
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	wrapper := &DB{DB: db, dialect: dialect}
	if err := wrapper.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating db: %w", err)
	}
	return wrapper, nil
}

// Queries returns the query set bound to this connection.
func (db *DB) Queries() *Queries {
	return New(db.DB, db.dialect)
}

// migrate creates the résumé table. Databases created before content hashes
// were tracked get the column added in place.
func (db *DB) migrate(ctx context.Context) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.dialect == DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			` + idColumn + `,
			name TEXT UNIQUE,
			file_path TEXT,
			text TEXT,
			content_hash TEXT NOT NULL DEFAULT '',
			upload_date TEXT
		)`,
	}
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}

	rows, err := db.QueryContext(ctx, "SELECT content_hash FROM resumes LIMIT 0")
	if err == nil {
		return rows.Close()
	}
	_, err = db.ExecContext(ctx, "ALTER TABLE resumes ADD COLUMN content_hash TEXT NOT NULL DEFAULT ''")
	return err
}

func sqliteDSN(driver, dsn string) string {
	lower := strings.ToLower(dsn)
	if dsn == ":memory:" || strings.HasPrefix(lower, "file::memory:") || strings.Contains(lower, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if driver == DriverSQLite3 {
		return dsn + sep + "_busy_timeout=5000&_journal_mode=WAL"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}
	return nil
}
