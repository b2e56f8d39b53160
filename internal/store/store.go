package store

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("product not found")

func init() {
	// sqlx does not know the modernc driver name out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DDL per driver; sqlite and postgres disagree on autoincrement syntax.
const (
	schemaSQLite = `
		CREATE TABLE IF NOT EXISTS products (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			quantity   INTEGER NOT NULL,
			price      INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`
	schemaPostgres = `
		CREATE TABLE IF NOT EXISTS products (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			quantity   INTEGER NOT NULL,
			price      BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
)

// Store is the persistent product table. The default driver is sqlite
// (single local file, pure Go driver); postgres is supported for setups
// that already run one.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects with the given driver ("sqlite" or "postgres") and DSN and
// creates the products table if it does not exist yet.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := schemaSQLite
	if s.driver == "postgres" {
		schema = schemaPostgres
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
