package mysql

import (
	"context"
	"fmt"
	"testing"

	"github.com/rediwo/redi-records/test"
	"github.com/rediwo/redi-records/types"
)

func init() {
	host := test.GetEnvOrDefault("MYSQL_TEST_HOST", "localhost")
	user := test.GetEnvOrDefault("MYSQL_TEST_USER", "testuser")
	password := test.GetEnvOrDefault("MYSQL_TEST_PASSWORD", "testpass")
	database := test.GetEnvOrDefault("MYSQL_TEST_DATABASE", "testdb")

	uri := fmt.Sprintf("mysql://%s:%s@%s:3306/%s", user, password, host, database)

	test.RegisterTestDatabaseUri("mysql", uri)
}

func newFromURI(uri string) (types.Database, error) {
	dsn, err := NewMySQLURIParser().ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return NewMySQLDB(dsn)
}

func TestMySQLConformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping conformance tests in short mode")
	}

	// Skip if MySQL is not available
	uri := test.GetTestDatabaseUri("mysql")
	db, err := newFromURI(uri)
	if err != nil {
		t.Skip("MySQL not available for testing")
	}
	if err := db.Connect(context.Background()); err != nil {
		t.Skipf("Cannot connect to MySQL: %v", err)
	}
	db.Close()

	suite := &test.AccessorConformanceTests{
		DriverName: "MySQL",
		NewDriver:  newFromURI,
		URI:        uri,
	}

	suite.RunAll(t)
}
