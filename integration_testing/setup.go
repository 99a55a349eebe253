//go:build integration

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/2beens/fitcalc/internal/config"
)

const (
	serverHost   = "127.0.0.1"
	testDBName   = "fitcalc"
	testPassword = "postgres"
)

type containers struct {
	DB          *sql.DB
	RedisClient *redis.Client
	PgPort      string
	RedisPort   string

	dockerPool *dockertest.Pool
	teardown   []func()
}

func newContainers(ctx context.Context) (*containers, error) {
	c := &containers{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	var err error
	c.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	c.dockerPool.MaxWait = 2 * time.Minute

	// uses pool to try to connect to Docker
	if err = c.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	if err := c.redisSetup(ctx); err != nil {
		c.cleanup()
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}
	if err := c.postgresSetup(); err != nil {
		c.cleanup()
		return nil, fmt.Errorf("failed to setup postgres: %w", err)
	}

	return c, nil
}

func (c *containers) cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf(" --> db close error: %s", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Printf(" --> redis close error: %s", err)
		}
	}
	for _, teardown := range c.teardown {
		teardown()
	}
}

func (c *containers) redisSetup(ctx context.Context) error {
	redisResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return fmt.Errorf("run redis: %w", err)
	}

	c.teardown = append(c.teardown, func() {
		_ = redisResource.Close()
	})

	c.RedisPort = redisResource.GetPort("6379/tcp")
	c.RedisClient = redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort("localhost", c.RedisPort),
	})

	return c.dockerPool.Retry(func() error {
		return c.RedisClient.Ping(ctx).Err()
	})
}

func (c *containers) postgresSetup() error {
	pgResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=" + testPassword,
			"POSTGRES_DB=" + testDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return fmt.Errorf("dockerpool run postgres: %w", err)
	}

	c.teardown = append(c.teardown, func() {
		_ = pgResource.Close()
	})

	c.PgPort = pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:%s@localhost:%s/%s?sslmode=disable", testPassword, c.PgPort, testDBName)

	// the container takes a moment before it accepts connections
	return c.dockerPool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return err
		}
		c.DB = db
		return nil
	})
}

func getTestConfig(store string, port int, c *containers) *config.Config {
	return &config.Config{
		Environment:           "development",
		Host:                  serverHost,
		Port:                  port,
		LogLevel:              "debug",
		PrometheusMetricsHost: serverHost,
		PrometheusMetricsPort: fmt.Sprintf("%d", port+1),
		AnalyticsStore:        store,
		AnalyticsAsync:        false,
		AnalyticsQueueSize:    100,
		AnalyticsWorkers:      1,
		PostgresHost:          "localhost",
		PostgresPort:          c.PgPort,
		PostgresDBName:        testDBName,
		PostgresUser:          "postgres",
		DBMigrate:             true,
		RedisHost:             "localhost",
		RedisPort:             c.RedisPort,
		AllowedOrigins:        []string{"*"},
	}
}
