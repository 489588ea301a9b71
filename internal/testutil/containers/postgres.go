//go:build integration

// Package containers starts throwaway PostgreSQL and Redis instances for
// integration tests. Run with: go test -tags integration ./...
package containers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopdesk/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

// PostgresDSN starts an empty PostgreSQL 16 and returns its DSN. The
// container is removed when the test ends.
func PostgresDSN(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	// postgres logs readiness twice: once for the init run, once for real
	ready := wait.ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(time.Minute)

	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("shopdesk_test"),
		tcpostgres.WithUsername("shopdesk"),
		tcpostgres.WithPassword("shopdesk"),
		testcontainers.WithWaitStrategy(ready),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start postgres container")

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

// NewPostgres returns a GORM connection to a fresh container with every SQL
// migration applied. TEST_DB_DEBUG=1 logs each statement.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(PostgresDSN(t)), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := migration.FindMigrationsPath(wd)
	require.NotEmpty(t, dir, "no migrations directory above %s", wd)

	m, err := migration.New(sqlDB, dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply migrations")
	return db
}
