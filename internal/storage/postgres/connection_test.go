package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obralog/obralog-admin/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "obralog"})
	assert.Equal(t, "host='db' port=5433 user='u' password='p' dbname='obralog' sslmode=disable connect_timeout=5", dsn)

	dsn = DSN(&config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: `it's a secret`, Name: "obralog", SSLMode: "require"})
	assert.Contains(t, dsn, `password='it\'s a secret'`)
	assert.Contains(t, dsn, "sslmode=require")
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS construction_sites")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))

	assert.Contains(t, schema, `(name COLLATE "C", id)`)

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	assert.Error(t, EnsureSchema(context.Background(), db))

	assert.NoError(t, mock.ExpectationsWereMet())
}
