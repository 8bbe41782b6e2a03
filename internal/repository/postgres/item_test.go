package postgres_test

import (
	"context"
	"testing"
	"time"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestItemRepository_DecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewItemRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE items SET available_stock_kg = available_stock_kg - ").
			WithArgs(30.0, "item-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementStock(ctx, "item-1", 30.0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Stock", func(t *testing.T) {
		mock.ExpectExec("UPDATE items SET available_stock_kg = available_stock_kg - ").
			WithArgs(60.0, "item-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id, event_id, name, available_stock_kg, created_on FROM items").
			WithArgs("item-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "available_stock_kg", "created_on"}).
				AddRow("item-1", "ev-1", "Kaju-Katli", 50.0, time.Now()))

		err := repo.DecrementStock(ctx, "item-1", 60.0)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Kaju-Katli", stockErr.ItemName)
		assert.Equal(t, 50.0, stockErr.AvailableKg)
	})

	t.Run("Item Not Found", func(t *testing.T) {
		mock.ExpectExec("UPDATE items SET available_stock_kg = available_stock_kg - ").
			WithArgs(5.0, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id, event_id, name, available_stock_kg, created_on FROM items").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "available_stock_kg", "created_on"}))

		err := repo.DecrementStock(ctx, "missing", 5.0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestItemRepository_IncreaseStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewItemRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE items SET available_stock_kg = available_stock_kg \\+ ").
		WithArgs(10.5, "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.IncreaseStock(ctx, "item-1", 10.5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_SetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewItemRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE items SET available_stock_kg = ").
			WithArgs(25.0, "item-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetStock(ctx, "item-1", 25.0))
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("UPDATE items SET available_stock_kg = ").
			WithArgs(25.0, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetStock(ctx, "missing", 25.0), domain.ErrNotFound)
	})
}
