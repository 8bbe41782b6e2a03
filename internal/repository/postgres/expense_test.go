package postgres_test

import (
	"context"
	"testing"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestExpenseRepository_Verify(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewExpenseRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE expenses SET verified = true").
			WithArgs("exp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Verify(ctx, "exp-1"))
	})

	t.Run("Already Verified", func(t *testing.T) {
		mock.ExpectExec("UPDATE expenses SET verified = true").
			WithArgs("exp-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT verified FROM expenses").
			WithArgs("exp-1").
			WillReturnRows(sqlmock.NewRows([]string{"verified"}).AddRow(true))

		assert.ErrorIs(t, repo.Verify(ctx, "exp-1"), domain.ErrAlreadyVerified)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("UPDATE expenses SET verified = true").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT verified FROM expenses").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"verified"}))

		assert.ErrorIs(t, repo.Verify(ctx, "missing"), domain.ErrNotFound)
	})
}

func TestExpenseRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewExpenseRepository(db)
	ctx := context.Background()

	// Only name/amount are touched; verified is left alone.
	mock.ExpectExec("UPDATE expenses SET name=").
		WithArgs("Decorations", 1200.0, "exp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, &domain.Expense{ID: "exp-1", Name: "Decorations", AmountINR: 1200})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
