package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	migrations := fstest.MapFS{
		"migrations/0002_add_index.sql":    {Data: []byte("CREATE INDEX idx ON memos (status);")},
		"migrations/0001_create_memos.sql": {Data: []byte("CREATE TABLE IF NOT EXISTS memos (id VARCHAR(36));")},
	}

	t.Run("applies migrations in lexical order", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		db := sqlx.NewDb(mockDB, "mysql")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS memos").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX idx").WillReturnResult(sqlmock.NewResult(0, 0))

		err = Migrate(context.Background(), db, migrations)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on first failing migration", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		db := sqlx.NewDb(mockDB, "mysql")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS memos").WillReturnError(assert.AnError)

		err = Migrate(context.Background(), db, migrations)
		assert.ErrorContains(t, err, "0001_create_memos.sql")
	})

	t.Run("no migrations is a no-op", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		db := sqlx.NewDb(mockDB, "mysql")

		err = Migrate(context.Background(), db, fstest.MapFS{})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
