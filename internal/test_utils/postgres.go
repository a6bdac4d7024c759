package test_utils

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/hackathons/internal/config"
	"github.com/klokku/hackathons/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestWithDB starts a Postgres container, applies all migrations and returns an open pool
// plus a cleanup function. It returns an error when no container runtime is available so
// callers can skip instead of failing.
func TestWithDB(ctx context.Context) (*pgxpool.Pool, func(), error) {
	cfg := config.Database{
		User:   "test_hackathons",
		Pass:   "test_hackathons",
		Name:   "hackathons",
		Schema: "public",
	}

	container, err := startPostgres(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Errorf("failed to terminate postgres container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, func() {}, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return nil, func() {}, err
	}
	cfg.Host = host
	cfg.Port = port.Int()
	log.Infof("Postgres container started at %s:%d", host, cfg.Port)

	if err := database.Migrate(cfg); err != nil {
		terminate()
		return nil, func() {}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := database.Open(ctx, cfg)
	if err != nil {
		terminate()
		return nil, func() {}, err
	}

	return pool, func() {
		pool.Close()
		terminate()
	}, nil
}

func startPostgres(ctx context.Context, cfg config.Database) (container *postgres.PostgresContainer, err error) {
	// testcontainers panics when no docker host can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container runtime unavailable: %v", r)
		}
	}()

	container, err = postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(cfg.Name),
		postgres.WithUsername(cfg.User),
		postgres.WithPassword(cfg.Pass),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Warnf("failed to start postgres container: %v", err)
		return nil, err
	}
	return container, nil
}
