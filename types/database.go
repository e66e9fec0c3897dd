package types

import (
	"context"
	"database/sql"

	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/schema"
)

// Database is a connected SQL backend that also acts as a Store.
type Database interface {
	Store

	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	RegisterSchema(s *schema.Schema) error
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	GetCapabilities() DriverCapabilities
	SetLogger(l logger.Logger)
	GetLogger() logger.Logger
}

// URIParser converts a database URI into the driver's native DSN.
type URIParser interface {
	ParseURI(uri string) (string, error)
	GetSupportedSchemes() []string
	GetDriverType() string
}
