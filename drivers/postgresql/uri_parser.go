package postgresql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// PostgreSQLURIParser implements types.URIParser for PostgreSQL
type PostgreSQLURIParser struct{}

// NewPostgreSQLURIParser creates a new PostgreSQL URI parser
func NewPostgreSQLURIParser() *PostgreSQLURIParser {
	return &PostgreSQLURIParser{}
}

// ParseURI converts a postgresql:// URI into a lib/pq key=value connection
// string. sslmode defaults to disable.
func (p *PostgreSQLURIParser) ParseURI(uri string) (string, error) {
	parsedURI, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI format: %w", err)
	}

	scheme := parsedURI.Scheme
	if scheme != "postgresql" && scheme != "postgres" {
		return "", fmt.Errorf("invalid scheme: %s, expected postgresql or postgres", scheme)
	}

	if parsedURI.Hostname() == "" {
		return "", fmt.Errorf("host is required")
	}
	if strings.TrimPrefix(parsedURI.Path, "/") == "" {
		return "", fmt.Errorf("database name is required")
	}

	q := parsedURI.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	parsedURI.RawQuery = q.Encode()
	parsedURI.Scheme = "postgres"

	dsn, err := pq.ParseURL(parsedURI.String())
	if err != nil {
		return "", fmt.Errorf("invalid PostgreSQL URI: %w", err)
	}
	return dsn, nil
}

// GetSupportedSchemes returns the URI schemes supported by this parser
func (p *PostgreSQLURIParser) GetSupportedSchemes() []string {
	return []string{"postgresql", "postgres"}
}

// GetDriverType returns the driver type this parser is for
func (p *PostgreSQLURIParser) GetDriverType() string {
	return "postgresql"
}
