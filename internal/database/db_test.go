package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	c := DSN("live", "pw", "db.local", "3307", "livehouse")
	assert.Equal(t, "db.local:3307", c.Addr)
	assert.Equal(t, "livehouse", c.DBName)
	assert.True(t, c.ParseTime)
	assert.Equal(t, time.UTC, c.Loc)
	assert.Equal(t, "utf8mb4", c.Params["charset"])
	assert.Contains(t, c.FormatDSN(), "live:pw@tcp(db.local:3307)/livehouse")
}
