package sqlite

import (
	"strings"

	"github.com/rediwo/redi-records/types"
)

// SQLiteCapabilities implements types.DriverCapabilities for SQLite
type SQLiteCapabilities struct{}

// NewSQLiteCapabilities creates new SQLite capabilities
func NewSQLiteCapabilities() *SQLiteCapabilities {
	return &SQLiteCapabilities{}
}

func (c *SQLiteCapabilities) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (c *SQLiteCapabilities) GetPlaceholder(index int) string {
	return "?"
}

func (c *SQLiteCapabilities) GetDriverType() types.DriverType {
	return types.DriverSQLite
}

func (c *SQLiteCapabilities) GetSupportedSchemes() []string {
	return []string{"sqlite", "sqlite3"}
}
