package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rediwo/redi-records/base"
	"github.com/rediwo/redi-records/query"
	"github.com/rediwo/redi-records/registry"
	"github.com/rediwo/redi-records/types"
)

func init() {
	driverType := string(types.DriverMySQL)

	// Register MySQL driver
	registry.Register(driverType, func(uri string) (types.Database, error) {
		return NewMySQLDB(uri)
	})

	// Register MySQL capabilities
	registry.RegisterCapabilities(driverType, NewMySQLCapabilities())

	// Register MySQL URI parser
	registry.RegisterURIParser(driverType, NewMySQLURIParser())
}

// MySQLDB implements the Database interface for MySQL
type MySQLDB struct {
	*query.Store
	dsn string
}

// NewMySQLDB creates a new MySQL database instance from a go-sql-driver DSN
func NewMySQLDB(dsn string) (*MySQLDB, error) {
	driver := base.NewDriver(dsn, types.DriverMySQL, NewMySQLCapabilities())
	return &MySQLDB{
		Store: query.NewStore(driver),
		dsn:   dsn,
	}, nil
}

// Connect establishes connection to MySQL database
func (m *MySQLDB) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", m.dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	m.SetDB(db)
	return nil
}
