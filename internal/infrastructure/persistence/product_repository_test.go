package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/acctmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productRows(id uuid.UUID, title, slug string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug", "price", "status", "in_stock", "digital"}).
		AddRow(id, title, slug, decimal.RequireFromString("19.99"), "approved", true, true)
}

func TestGormProductRepository_FindBySlug(t *testing.T) {
	t.Run("finds product by slug", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("netflix-account", 1).
			WillReturnRows(productRows(productID, "Netflix Account", "netflix-account"))

		product, err := repo.FindBySlug(context.Background(), "netflix-account")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "netflix-account", product.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown slug", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindBySlug(context.Background(), "missing")

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormProductRepository_FindFiltered(t *testing.T) {
	t.Run("filters to sellable products", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		filter := catalog.StoreFilter{Page: 1, PageSize: 20}

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 AND in_stock = \$2 AND digital = \$3`).
			WillReturnRows(productRows(uuid.New(), "Netflix Account", "netflix-account"))

		products, err := repo.FindFiltered(context.Background(), filter)

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "netflix-account", products[0].Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Search(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 AND title ILIKE \$2`).
		WillReturnRows(productRows(uuid.New(), "Netflix Account", "netflix-account"))

	products, err := repo.Search(context.Background(), "netflix", shared.DefaultFilter())

	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Netflix Account", products[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no rows affected", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
