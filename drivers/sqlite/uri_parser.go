package sqlite

import (
	"fmt"
	"net/url"
	"strings"
)

// SQLiteURIParser implements types.URIParser for SQLite databases
type SQLiteURIParser struct{}

// NewSQLiteURIParser creates a new SQLite URI parser
func NewSQLiteURIParser() *SQLiteURIParser {
	return &SQLiteURIParser{}
}

// ParseURI converts a SQLite URI into a go-sqlite3 data source name.
// Supported formats:
//   - sqlite://:memory:
//   - sqlite:///:memory:
//   - sqlite:///absolute/path/database.db
//   - sqlite://relative/path/database.db
//   - sqlite:///path/database.db?_busy_timeout=5000
func (p *SQLiteURIParser) ParseURI(uri string) (string, error) {
	parsedURI, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI format: %w", err)
	}

	if parsedURI.Scheme != "sqlite" && parsedURI.Scheme != "sqlite3" {
		return "", fmt.Errorf("unsupported URI scheme: %s", parsedURI.Scheme)
	}

	if parsedURI.Host == ":memory:" || (parsedURI.Host == "" && strings.HasPrefix(parsedURI.Path, "/:memory:")) {
		return ":memory:", nil
	}

	path := parsedURI.Path
	switch {
	case parsedURI.Host != "":
		// sqlite://relative/path/database.db
		path = parsedURI.Host + path
	case !strings.HasPrefix(uri, parsedURI.Scheme+":///") && strings.HasPrefix(path, "/"):
		// sqlite:/path is relative
		path = path[1:]
	}

	if path == "" {
		return "", fmt.Errorf("database path is required")
	}

	if parsedURI.RawQuery != "" {
		path = "file:" + path + "?" + parsedURI.RawQuery
	}

	return path, nil
}

// GetSupportedSchemes returns the URI schemes this parser supports
func (p *SQLiteURIParser) GetSupportedSchemes() []string {
	return []string{"sqlite", "sqlite3"}
}

// GetDriverType returns the driver type this parser is for
func (p *SQLiteURIParser) GetDriverType() string {
	return "sqlite"
}
