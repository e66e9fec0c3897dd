package types

// DriverType represents a database driver type
type DriverType string

const (
	DriverSQLite     DriverType = "sqlite"
	DriverMySQL      DriverType = "mysql"
	DriverPostgreSQL DriverType = "postgresql"
)

func (d DriverType) String() string {
	return string(d)
}

// DriverCapabilities describes the SQL dialect of a driver.
type DriverCapabilities interface {
	QuoteIdentifier(name string) string
	// GetPlaceholder returns the bind parameter for the 1-based index.
	GetPlaceholder(index int) string
	GetDriverType() DriverType
	GetSupportedSchemes() []string
}
