package base

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rediwo/redi-records/logger"
	"github.com/rediwo/redi-records/types"
	"github.com/stretchr/testify/assert"
)

func TestDBLoggerLogSQL(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewDefaultLogger("db")
	l.SetOutput(&buf)
	l.SetLevel(logger.LogLevelDebug)

	NewDBLogger(l).LogSQL("  SELECT * FROM posts WHERE id = ?  ", []any{7}, time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "SELECT * FROM posts WHERE id = ?")
	assert.Contains(t, out, "Args: [7]")
}

func TestDBLoggerSkipsBelowDebug(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewDefaultLogger("db")
	l.SetOutput(&buf)
	l.SetLevel(logger.LogLevelInfo)

	NewDBLogger(l).LogSQL("SELECT 1", nil, time.Millisecond)
	assert.Zero(t, buf.Len())
}

func TestNewDBLoggerNil(t *testing.T) {
	l := NewDBLogger(nil)
	assert.Equal(t, logger.LogLevelNone, l.GetLevel())
}

func TestDriverWithoutConnection(t *testing.T) {
	d := NewDriver("", types.DriverSQLite, nil)
	_, err := d.Exec(context.Background(), "SELECT 1")
	assert.Error(t, err)
	_, err = d.Query(context.Background(), "SELECT 1")
	assert.Error(t, err)
	assert.Error(t, d.Ping(context.Background()))
	assert.NoError(t, d.Close())
}
