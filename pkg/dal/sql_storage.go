package dal

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	migrateSqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	// sqlite3 driver (cgo)
	_ "github.com/mattn/go-sqlite3"

	// sqlite driver (pure go)
	_ "modernc.org/sqlite"
)

const (
	// DriverSqlite3 is a cgo based sqlite driver
	DriverSqlite3 = "sqlite3"

	// DriverSqlite is a pure go sqlite driver
	DriverSqlite = "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type sqlStorage struct {
	db     *sql.DB
	driver string
	dsn    string
	now    func() time.Time
}

func newMigrationsDriver(driverName string, db *sql.DB) (database.Driver, error) {
	switch driverName {
	case DriverSqlite3:
		return migrateSqlite3.WithInstance(db, &migrateSqlite3.Config{})
	case DriverSqlite:
		return migrateSqlite.WithInstance(db, &migrateSqlite.Config{})
	}
	return nil, errors.Errorf("Unsupported storage driver: %v", driverName)
}

// Setup applies schema migrations. Uses a separate connection
// so the main one stays untouched by the migrate lifecycle
func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage (driver: %v)", s.driver)
	migrateDB, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return errors.Wrap(err, "Failed to open migrations db")
	}
	defer migrateDB.Close()

	driver, err := newMigrationsDriver(s.driver, migrateDB)
	if err != nil {
		return errors.Wrap(err, "Failed to create migrations driver")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "Failed to create migrations source")
	}

	m, err := migrate.NewWithInstance("iofs", source, s.driver, driver)
	if err != nil {
		return errors.Wrap(err, "Failed to create migrate instance")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "Failed to run migrations")
	}
	return nil
}

func (s *sqlStorage) GetValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrKeyNotFound, "Failed to get value of %v", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to get value of %v", key)
	}
	return value, nil
}

func (s *sqlStorage) SaveValue(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO kv_entries(key, value, updated_at)
	VALUES(?, ?, ?)
	ON CONFLICT(key) DO UPDATE
	SET value=excluded.value, updated_at=excluded.updated_at
	`, key, value, s.now().UTC()); err != nil {
		return errors.Wrapf(err, "Failed to save value of %v", key)
	}
	return nil
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// WithDataSource sets the driver and dsn used to run migrations
func WithDataSource(driver string, dsn string) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.driver = driver
		s.dsn = dsn
	}
}

func withNow(now func() time.Time) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.now = now
	}
}

// NewSQLStorage returns an instance of a sql backed storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{driver: DriverSqlite3, now: time.Now}
	for _, opt := range opts {
		opt(storage)
	}
	if storage.db == nil {
		return nil, errors.New("SQL storage requires db instance")
	}
	return storage, nil
}
