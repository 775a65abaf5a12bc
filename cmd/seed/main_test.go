package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func runSeed(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("DB_SQLITE_PATH", dbPath)
	t.Setenv("LOG_OUTPUT_PATH", "stderr")

	out, err := runSeed(t, "--count", "15", "--batch-size", "4", "--seed", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "inserted 15 users")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var n int64
	require.NoError(t, db.Table("users").Count(&n).Error)
	assert.Equal(t, int64(15), n)
}

func TestSeedCommand_InvalidFlags(t *testing.T) {
	_, err := runSeed(t, "--batch-size", "0")
	assert.ErrorContains(t, err, "batch size must be positive")

	_, err = runSeed(t, "--count", "abc")
	assert.Error(t, err)
}

func TestSeedCommand_Defaults(t *testing.T) {
	cmd := newRootCmd()

	count, err := cmd.Flags().GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 100000, count)

	batch, err := cmd.Flags().GetInt("batch-size")
	require.NoError(t, err)
	assert.Equal(t, 1000, batch)
}
