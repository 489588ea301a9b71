//go:build integration

package migration_test

import (
	"os"
	"testing"

	"github.com/shopdesk/backend/internal/infrastructure/migration"
	"github.com/shopdesk/backend/internal/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrator_RoundTrip(t *testing.T) {
	db := containers.NewPostgres(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	files, err := migration.ListMigrations(migration.FindMigrationsPath(wd))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	m, err := migration.New(sqlDB, migration.FindMigrationsPath(wd), zap.NewNop())
	require.NoError(t, err)

	latest, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.NotZero(t, latest)

	require.NoError(t, m.Up(), "up at latest is a no-op")

	require.NoError(t, m.Steps(-1))
	v, _, err := m.Version()
	require.NoError(t, err)
	assert.Less(t, v, latest)

	require.NoError(t, m.Down())
	v, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, db.Migrator().HasTable("invoices"))

	require.NoError(t, m.GoTo(latest))
	assert.True(t, db.Migrator().HasTable("invoices"))
}
