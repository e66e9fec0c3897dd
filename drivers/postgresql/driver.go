package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rediwo/redi-records/base"
	"github.com/rediwo/redi-records/query"
	"github.com/rediwo/redi-records/registry"
	"github.com/rediwo/redi-records/types"
)

func init() {
	driverType := string(types.DriverPostgreSQL)

	// Register PostgreSQL driver
	registry.Register(driverType, func(uri string) (types.Database, error) {
		return NewPostgreSQLDB(uri)
	})

	// Register PostgreSQL capabilities
	registry.RegisterCapabilities(driverType, NewPostgreSQLCapabilities())

	// Register PostgreSQL URI parser
	registry.RegisterURIParser(driverType, NewPostgreSQLURIParser())
}

// PostgreSQLDB implements the Database interface for PostgreSQL
type PostgreSQLDB struct {
	*query.Store
	dsn string
}

// NewPostgreSQLDB creates a new PostgreSQL database instance from a lib/pq
// connection string
func NewPostgreSQLDB(dsn string) (*PostgreSQLDB, error) {
	driver := base.NewDriver(dsn, types.DriverPostgreSQL, NewPostgreSQLCapabilities())
	return &PostgreSQLDB{
		Store: query.NewStore(driver),
		dsn:   dsn,
	}, nil
}

// Connect establishes connection to PostgreSQL database
func (p *PostgreSQLDB) Connect(ctx context.Context) error {
	db, err := sql.Open("postgres", p.dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	p.SetDB(db)
	return nil
}
