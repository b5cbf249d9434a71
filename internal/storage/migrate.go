package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Applied versions are recorded in schema_migrations, so MigrateUp only runs
// what is new.
const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

var ErrSchemaTooNew = errors.New("storage: database schema is newer than supported")

type migration struct {
	version int
	name    string
	up      string
}

func MigrateUp(db *sql.DB) error {
	migrations, applied, err := migrationState(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.up); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				m.version, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
	}
	return nil
}

// SchemaVersion is the highest applied migration, 0 on a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(migrationsTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}
	var version int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// checkSchemaVersion refuses a database migrated by a newer build, whose
// tables this build would misread.
func checkSchemaVersion(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	known := 0
	if len(migrations) > 0 {
		known = migrations[len(migrations)-1].version
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current > known {
		return fmt.Errorf("%w: database is at version %d, this build knows %d", ErrSchemaTooNew, current, known)
	}
	return nil
}

func migrationState(db *sql.DB) ([]migration, map[int]bool, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Exec(migrationsTable); err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[v] = true
	}
	return migrations, applied, rows.Err()
}

// loadMigrations reads every NNNN_name.up.sql, ordered by NNNN.
func loadMigrations() ([]migration, error) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(ups))
	for _, upPath := range ups {
		name := strings.TrimSuffix(strings.TrimPrefix(upPath, "migrations/"), ".up.sql")
		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version prefix", name)
		}
		up, err := migrationFiles.ReadFile(upPath)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", upPath, err)
		}
		out = append(out, migration{version: version, name: name, up: string(up)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
