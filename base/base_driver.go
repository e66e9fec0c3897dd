package base

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/schema"
	"github.com/rediwo/redi-records/types"
)

// Driver provides the functionality shared by all SQL drivers: the
// connection handle, the dialect, the model registry and statement logging.
type Driver struct {
	DB             *sql.DB
	URI            string
	DriverType     types.DriverType
	Capabilities   types.DriverCapabilities
	SchemaRegistry *schema.Registry

	mu     sync.RWMutex
	logger *DBLogger
}

// NewDriver creates a new base driver instance
func NewDriver(uri string, driverType types.DriverType, capabilities types.DriverCapabilities) *Driver {
	return &Driver{
		URI:            uri,
		DriverType:     driverType,
		Capabilities:   capabilities,
		SchemaRegistry: schema.NewRegistry(),
		logger:         NewDBLogger(nil),
	}
}

func (b *Driver) SetDB(db *sql.DB) {
	b.DB = db
}

func (b *Driver) GetDB() *sql.DB {
	return b.DB
}

func (b *Driver) GetCapabilities() types.DriverCapabilities {
	return b.Capabilities
}

// RegisterSchema registers a model with the driver
func (b *Driver) RegisterSchema(s *schema.Schema) error {
	return b.SchemaRegistry.Register(s)
}

func (b *Driver) SetLogger(l logger.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = NewDBLogger(l)
}

func (b *Driver) GetLogger() logger.Logger {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.logger.Logger
}

func (b *Driver) dbLogger() *DBLogger {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.logger
}

func (b *Driver) Ping(ctx context.Context) error {
	if b.DB == nil {
		return fmt.Errorf("database not connected")
	}
	return b.DB.PingContext(ctx)
}

func (b *Driver) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// Exec executes a statement and logs it
func (b *Driver) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database not connected")
	}
	start := time.Now()
	result, err := b.DB.ExecContext(ctx, query, args...)
	b.dbLogger().LogSQL(query, args, time.Since(start))
	return result, err
}

// Query executes a query and logs it
func (b *Driver) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database not connected")
	}
	start := time.Now()
	rows, err := b.DB.QueryContext(ctx, query, args...)
	b.dbLogger().LogSQL(query, args, time.Since(start))
	return rows, err
}
