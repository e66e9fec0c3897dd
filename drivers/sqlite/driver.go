package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rediwo/redi-records/base"
	"github.com/rediwo/redi-records/query"
	"github.com/rediwo/redi-records/registry"
	"github.com/rediwo/redi-records/types"
)

func init() {
	driverType := string(types.DriverSQLite)

	// Register SQLite driver
	registry.Register(driverType, func(uri string) (types.Database, error) {
		return NewSQLiteDB(uri)
	})

	// Register SQLite capabilities
	registry.RegisterCapabilities(driverType, NewSQLiteCapabilities())

	// Register SQLite URI parser
	registry.RegisterURIParser(driverType, NewSQLiteURIParser())
}

// SQLiteDB implements the Database interface for SQLite
type SQLiteDB struct {
	*query.Store
	nativeURI string
}

// NewSQLiteDB creates a new SQLite database instance
// The uri parameter should be a native SQLite path (e.g., "/path/to/db.sqlite" or ":memory:")
func NewSQLiteDB(nativeURI string) (*SQLiteDB, error) {
	driver := base.NewDriver(nativeURI, types.DriverSQLite, NewSQLiteCapabilities())
	return &SQLiteDB{
		Store:     query.NewStore(driver),
		nativeURI: nativeURI,
	}, nil
}

// Connect establishes connection to SQLite database
func (s *SQLiteDB) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite3", s.nativeURI)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Every connection to :memory: opens a separate database
	if strings.Contains(s.nativeURI, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	s.SetDB(db)

	// Enable foreign key constraints in SQLite
	if _, err := s.Exec(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign key constraints: %w", err)
	}

	return nil
}
