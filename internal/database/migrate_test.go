package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columnQuery = regexp.QuoteMeta("SELECT COUNT(*) FROM information_schema.COLUMNS")

func TestMigrate_AddsMissingColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(columnQuery).WithArgs("events", "doorPrice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE events ADD COLUMN doorPrice")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(columnQuery).WithArgs("events", "artists").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE events ADD COLUMN artists")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_IdempotentWhenColumnsExist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(columnQuery).WithArgs("events", "doorPrice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(columnQuery).WithArgs("events", "artists").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	assert.NoError(t, Migrate(context.Background(), db))
	// no ALTER TABLE was expected, so any attempt would have failed above
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_AlterFailureIsReported(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(columnQuery).WithArgs("events", "doorPrice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("ALTER TABLE events ADD COLUMN doorPrice").WillReturnError(errors.New("disk full"))

	err = Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "events.doorPrice")
}
