package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rediwo/redi-records/base"
	"github.com/rediwo/redi-records/internal/testutil"
	"github.com/rediwo/redi-records/types"
	"github.com/stretchr/testify/require"
)

type backtickCapabilities struct{}

func (backtickCapabilities) QuoteIdentifier(name string) string { return "`" + name + "`" }
func (backtickCapabilities) GetPlaceholder(int) string          { return "?" }
func (backtickCapabilities) GetDriverType() types.DriverType    { return types.DriverSQLite }
func (backtickCapabilities) GetSupportedSchemes() []string      { return []string{"sqlite"} }

type dollarCapabilities struct{}

func (dollarCapabilities) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
func (dollarCapabilities) GetPlaceholder(i int) string     { return fmt.Sprintf("$%d", i) }
func (dollarCapabilities) GetDriverType() types.DriverType { return types.DriverPostgreSQL }
func (dollarCapabilities) GetSupportedSchemes() []string   { return []string{"postgresql"} }

// newTestStore returns an unconnected store over the blog models.
func newTestStore(t *testing.T, caps types.DriverCapabilities) *Store {
	t.Helper()
	driver := base.NewDriver("", caps.GetDriverType(), caps)
	for _, s := range testutil.BlogSchemas() {
		require.NoError(t, driver.RegisterSchema(s))
	}
	return NewStore(driver)
}

// newSQLiteStore returns a store over a seeded in-memory database.
func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t, backtickCapabilities{})

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store.SetDB(db)
	require.NoError(t, testutil.SeedBlog(context.Background(), store))
	return store
}

func model(t *testing.T, store *Store, name string) types.Relation {
	t.Helper()
	rel, err := store.Model(name)
	require.NoError(t, err)
	return rel
}

func ids(records []types.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r["id"].(int64)
	}
	return out
}
