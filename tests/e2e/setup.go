//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-cart/cmd/bootstrap"
	"storefront-cart/cmd/bootstrap/components"
	"storefront-cart/internal/infra/db"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/tests/common/authtest"
	"storefront-cart/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver for wait.ForSQL
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
	schemaFile = "migrations/001_initial_schema.sql"
)

var (
	pgOnce     sync.Once
	pgEndpoint string
	pgErr      error
)

// SharedSuite boots one Postgres container per test binary, a fresh database
// per suite and the full application graph on top of it. Sub tests start from
// empty tables.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	JWT    *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, postgresEndpoint(t))
	applySchema(t, dbCfg)

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	s.Config = cfg
	s.Router, s.DB = startApp(t, cfg)
	s.JWT = authtest.NewJWTHelper(cfg.JWT)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset cart tables")
}

// postgresEndpoint returns host:port of the shared container, starting it on
// first use. Ryuk removes the container when the test binary exits.
func postgresEndpoint(t *testing.T) string {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		var c testcontainers.Container
		c, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "full_page_writes=off"},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return adminDSN(fmt.Sprintf("%s:%s", host, port.Port()))
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "storefront-cart-e2e"},
			},
			Started: true,
		})
		if pgErr != nil {
			return
		}

		var (
			host   string
			mapped nat.Port
		)
		if host, pgErr = c.Host(ctx); pgErr != nil {
			return
		}
		if mapped, pgErr = c.MappedPort(ctx, pgPort); pgErr != nil {
			return
		}
		pgEndpoint = fmt.Sprintf("%s:%s", host, mapped.Port())
	})
	require.NoError(t, pgErr, "failed to start postgres container")
	return pgEndpoint
}

func adminDSN(endpoint string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, endpoint)
}

// createDatabase creates a uniquely named database so suites in parallel
// packages never share tables.
func createDatabase(t *testing.T, endpoint string) config.DBConfig {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(endpoint))
	require.NoError(t, err, "failed to connect as admin")
	defer admin.Close()

	name := "cart_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	// a freshly started server can still refuse the first statements
	require.Eventually(t, func() bool {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err == nil
	}, 10*time.Second, 500*time.Millisecond, "failed to create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(endpoint))
		if err != nil {
			t.Logf("drop database %s: %v", name, err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			t.Logf("drop database %s: %v", name, err)
		}
	})

	host, port, _ := strings.Cut(endpoint, ":")
	return config.DBConfig{
		Host:     host,
		Port:     port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

// applySchema runs the schema file; go test starts in the package directory,
// so the repository root is searched upwards.
func applySchema(t *testing.T, dbCfg config.DBConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		ddl []byte
		err error
	)
	for dir := "."; ; dir = filepath.Join("..", dir) {
		ddl, err = os.ReadFile(filepath.Join(dir, schemaFile))
		if err == nil || strings.Count(dir, "..") >= 3 {
			break
		}
	}
	require.NoError(t, err, "schema file not found")

	pool, _, err := db.Connect(ctx, dbCfg)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, string(ddl))
	require.NoError(t, err, "failed to apply schema")
}

// startApp wires the production modules against the test database. The local
// cart runs on the memory KV driver from NewTestConfig.
func startApp(t *testing.T, cfg config.Config) (*gin.Engine, *pgxpool.Pool) {
	var (
		router *gin.Engine
		pool   *pgxpool.Pool
	)
	app := fx.New(
		fx.Supply(cfg),
		bootstrap.DBModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.KVModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &pool),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start application")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			t.Logf("stop application: %v", err)
		}
	})
	return router, pool
}
