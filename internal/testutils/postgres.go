package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/skillbridge/marketplace-go/models"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupPostgresForIntegration returns a migrated gorm handle against
// either an externally provided database (TEST_DB_DSN) or a throwaway
// postgres container.
func SetupPostgresForIntegration() (*gorm.DB, func()) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		gormDB := openAndMigrate(dsn)
		return gormDB, func() {}
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "marketplace",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := pg.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/marketplace?sslmode=disable", host, port.Port())

	// retry until the server accepts connections
	var raw *sql.DB
	for i := 0; i < 10; i++ {
		raw, err = sql.Open("postgres", dsn)
		if err == nil {
			err = raw.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatal(err)
	}
	_ = raw.Close()

	gormDB := openAndMigrate(dsn)

	cleanup := func() {
		_ = pg.Terminate(ctx)
	}
	return gormDB, cleanup
}

func openAndMigrate(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(&models.Project{}, &models.Bid{}, &models.Message{}); err != nil {
		log.Fatal(err)
	}
	return gormDB
}
