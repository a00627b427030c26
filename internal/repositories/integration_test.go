package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/stocktrack-api/internal/migrations"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	err = migrations.Up(context.Background(), db.DB)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestPostgresUserRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	created, err := writeRepo.Save(ctx, "alice@example.com", "bcrypt-hash", "USER")
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "USER", created.Role)

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup, err := writeRepo.Save(ctx, "alice@example.com", "other-hash", "USER")
		assert.ErrorIs(t, err, ErrUniqueViolation)
		assert.Nil(t, dup)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "alice@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "bcrypt-hash", user.PasswordHash)
	})

	t.Run("GetByEmailAbsent", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ListAll", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, "bob@example.com", "hash", "USER")
		assert.NoError(t, err)

		users, err := readRepo.ListAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestPostgresProductRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewProductWriteRepository(db)
	readRepo := NewProductReadRepository(db)
	ctx := context.Background()

	first, err := writeRepo.Save(ctx, "alice@example.com", "SKU-1", "Nut", 10, 0.75)
	assert.NoError(t, err)
	second, err := writeRepo.Save(ctx, "alice@example.com", "SKU-2", "Bolt", 5, 1.25)
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, "bob@example.com", "SKU-3", "Washer", 100, 0.05)
	assert.NoError(t, err)

	t.Run("ListByOwnerIsScopedAndOrdered", func(t *testing.T) {
		products, err := readRepo.ListByOwner(ctx, "alice@example.com")
		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, second.ID, products[0].ID)
		assert.Equal(t, first.ID, products[1].ID)
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, "alice@example.com", first.ID, "SKU-1", "Nut M8", 20, 0.8)
		assert.NoError(t, err)
		assert.Equal(t, "Nut M8", updated.Product)
		assert.Equal(t, int64(20), updated.Qty)
	})

	t.Run("UpdateOtherOwnerRow", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, "bob@example.com", first.ID, "SKU-1", "Nut", 1, 0.1)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, updated)
	})

	t.Run("Delete", func(t *testing.T) {
		err := writeRepo.Delete(ctx, "alice@example.com", first.ID)
		assert.NoError(t, err)

		err = writeRepo.Delete(ctx, "alice@example.com", first.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		products, err := readRepo.ListByOwner(ctx, "alice@example.com")
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})
}
