package migration_test

import (
	"log/slog"
	"testing"

	"github.com/arjunm29/nestfind/pkg/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunner_DefaultLogger(t *testing.T) {
	r := migration.NewRunner("postgres://invalid", "migrations", nil)
	require.NotNil(t, r)
}

func TestRunner_UnreachableDatabase(t *testing.T) {
	r := migration.NewRunner("postgres://127.0.0.1:1/nestfind?sslmode=disable", "migrations", slog.Default())

	assert.Error(t, r.Up())
	assert.Error(t, r.Down())
	assert.Error(t, r.Force(1))
	assert.Error(t, r.Auto())
	_, _, err := r.Version()
	assert.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	r := migration.NewRunner("postgres://127.0.0.1:1/nestfind?sslmode=disable", "migrations", slog.Default())

	t.Run("dispatches known commands", func(t *testing.T) {
		// All of these reach the database layer and fail there
		assert.Error(t, r.Run("up"))
		assert.Error(t, r.Run("down"))
		assert.Error(t, r.Run("version"))
		assert.Error(t, r.Run("force=3"))
	})

	t.Run("rejects a non-numeric force version", func(t *testing.T) {
		err := r.Run("force=abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad force version")
	})

	t.Run("rejects an unknown command", func(t *testing.T) {
		err := r.Run("sideways")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown migration command")
	})
}
