package mysql

import (
	"strings"

	"github.com/rediwo/redi-records/types"
)

// MySQLCapabilities implements types.DriverCapabilities for MySQL
type MySQLCapabilities struct{}

// NewMySQLCapabilities creates new MySQL capabilities
func NewMySQLCapabilities() *MySQLCapabilities {
	return &MySQLCapabilities{}
}

func (c *MySQLCapabilities) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (c *MySQLCapabilities) GetPlaceholder(index int) string {
	return "?"
}

func (c *MySQLCapabilities) GetDriverType() types.DriverType {
	return types.DriverMySQL
}

func (c *MySQLCapabilities) GetSupportedSchemes() []string {
	return []string{"mysql"}
}
