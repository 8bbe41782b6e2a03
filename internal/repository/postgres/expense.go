package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository"

	"github.com/google/uuid"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, added_by_id, event_id, name, amount_inr, verified, date_time`

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.DateTime = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.AddedByID, e.EventID, e.Name, e.AmountINR, e.Verified, e.DateTime)
	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	e := &domain.Expense{}
	var dateTime time.Time
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.AddedByID, &e.EventID, &e.Name, &e.AmountINR, &e.Verified, &dateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e.DateTime = dateTime.UTC().Format(time.RFC3339)
	return e, nil
}

// Update overwrites name and amount only; the verified flag is not an
// editable field and survives edits untouched.
func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET name=$1, amount_inr=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.AmountINR, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Verify is conditional on the expense still being pending, so a second
// verify reports ErrAlreadyVerified instead of silently re-applying.
func (r *expenseRepository) Verify(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE expenses SET verified = true WHERE id = $1 AND verified = false`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var verified bool
	err = r.db.QueryRowContext(ctx, `SELECT verified FROM expenses WHERE id = $1`, id).Scan(&verified)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrAlreadyVerified
}

func (r *expenseRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE event_id = $1 ORDER BY date_time DESC`
	return r.list(ctx, query, eventID)
}

func (r *expenseRepository) ListUnverified(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE verified = false ORDER BY date_time`
	return r.list(ctx, query)
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var dateTime time.Time
		if err := rows.Scan(&e.ID, &e.AddedByID, &e.EventID, &e.Name, &e.AmountINR, &e.Verified, &dateTime); err != nil {
			return nil, err
		}
		e.DateTime = dateTime.UTC().Format(time.RFC3339)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
