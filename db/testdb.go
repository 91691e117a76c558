package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewTestDB starts a disposable PostgreSQL container and returns a migrated connection.
// The returned teardown terminates the container.
func NewTestDB(ctx context.Context) (*gorm.DB, func(), error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hire_test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "test container start failed")
	}
	teardown := func() {
		_ = container.Terminate(context.Background())
	}
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		teardown()
		return nil, nil, err
	}
	gdb, err := Open(dsn)
	if err != nil {
		teardown()
		return nil, nil, err
	}
	if err = Migrate(gdb); err != nil {
		teardown()
		return nil, nil, err
	}
	return gdb, teardown, nil
}
