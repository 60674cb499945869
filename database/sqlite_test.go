package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
	os.Exit(m.Run())
}

func TestOpenRunsMigrations(t *testing.T) {
	dbConn, err := Open(filepath.Join(t.TempDir(), "records.db"), "./migrations")
	require.NoError(t, err)
	defer dbConn.Close()

	var tables []string
	require.NoError(t, dbConn.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'students') ORDER BY name"))
	assert.Equal(t, []string{"students", "users"}, tables)

	// applied migrations are skipped on the next run
	require.NoError(t, migrations.Migrate(dbConn, "./migrations"))
}

func TestOpenKeepsDataAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	dbConn, err := Open(path, "./migrations")
	require.NoError(t, err)
	_, err = dbConn.Exec("INSERT INTO users (name, email, password) VALUES ('a', 'a@x.test', 'p')")
	require.NoError(t, err)
	require.NoError(t, dbConn.Close())

	dbConn, err = Open(path, "./migrations")
	require.NoError(t, err)
	defer dbConn.Close()

	var count int
	require.NoError(t, dbConn.Get(&count, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, count)
}

func TestIsUniqueViolation(t *testing.T) {
	dbConn, err := Open(filepath.Join(t.TempDir(), "records.db"), "./migrations")
	require.NoError(t, err)
	defer dbConn.Close()

	_, err = dbConn.Exec("INSERT INTO users (name, email, password) VALUES ('a', 'a@x.test', 'p')")
	require.NoError(t, err)
	_, err = dbConn.Exec("INSERT INTO users (name, email, password) VALUES ('b', 'a@x.test', 'p')")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	insertStudent := "INSERT INTO students (idno, lastname, firstname, course, level) VALUES ('1', 'Cruz', 'Ana', 'BSIT', 1)"
	_, err = dbConn.Exec(insertStudent)
	require.NoError(t, err)
	_, err = dbConn.Exec(insertStudent)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = dbConn.Exec("INSERT INTO students (idno, firstname, course, level) VALUES ('2', 'Ana', 'BSIT', 1)")
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err), "NOT NULL failure is not a uniqueness conflict")

	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}
