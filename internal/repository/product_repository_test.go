package repository

import (
	"context"
	"testing"

	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordercore/order-service/internal/models"
)

func newProductRepoWithMock(t *testing.T) (*PostgresProductRepository, pgxmock.PgxPoolIface) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &PostgresProductRepository{pool: pool, logger: zerolog.Nop()}, pool
}

func TestPostgresProductRepository_DecrementStock_InsufficientStock(t *testing.T) {
	repo, pool := newProductRepoWithMock(t)
	defer pool.Close()

	id := uuid.New()
	pool.ExpectBegin()
	pool.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity - `).
		WithArgs(5, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)

	err = repo.DecrementStock(context.Background(), tx, id, 5)

	assert.Equal(t, models.ErrInsufficientStock, err)
}

func TestPostgresProductRepository_DecrementStock_Success(t *testing.T) {
	repo, pool := newProductRepoWithMock(t)
	defer pool.Close()

	id := uuid.New()
	pool.ExpectBegin()
	pool.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity - `).
		WithArgs(2, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)

	err = repo.DecrementStock(context.Background(), tx, id, 2)

	require.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestPostgresProductRepository_IncrementStock_ProductVanished(t *testing.T) {
	repo, pool := newProductRepoWithMock(t)
	defer pool.Close()

	id := uuid.New()
	pool.ExpectBegin()
	pool.ExpectExec(`UPDATE products SET stock_quantity = stock_quantity \+ `).
		WithArgs(2, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)

	err = repo.IncrementStock(context.Background(), tx, id, 2)

	assert.Equal(t, models.ErrProductNotFound, err)
}

func TestPostgresProductRepository_GetBySKU_NotActive(t *testing.T) {
	repo, pool := newProductRepoWithMock(t)
	defer pool.Close()

	id := uuid.New()
	pool.ExpectBegin()
	pool.ExpectQuery(`SELECT id, sku, name`).
		WithArgs("DISCONTINUED-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "sku", "name", "description", "price", "stock_quantity", "active", "created_at", "updated_at",
		}).AddRow(id, "DISCONTINUED-1", "Old Widget", "", "9.99", 0, false, time.Now(), time.Now()))

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)

	product, err := repo.GetBySKU(context.Background(), tx, "DISCONTINUED-1")

	require.NoError(t, err)
	assert.False(t, product.Active)
}
