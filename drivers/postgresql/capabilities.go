package postgresql

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/rediwo/redi-records/types"
)

// PostgreSQLCapabilities implements types.DriverCapabilities for PostgreSQL
type PostgreSQLCapabilities struct{}

// NewPostgreSQLCapabilities creates new PostgreSQL capabilities
func NewPostgreSQLCapabilities() *PostgreSQLCapabilities {
	return &PostgreSQLCapabilities{}
}

func (c *PostgreSQLCapabilities) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func (c *PostgreSQLCapabilities) GetPlaceholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (c *PostgreSQLCapabilities) GetDriverType() types.DriverType {
	return types.DriverPostgreSQL
}

func (c *PostgreSQLCapabilities) GetSupportedSchemes() []string {
	return []string{"postgresql", "postgres"}
}
