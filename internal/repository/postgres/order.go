package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, member_id, event_id, item_id, customer_name, quantity_kg, amount_inr, payment_status, verified, edited, date_time`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.DateTime = time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.MemberID, o.EventID, o.ItemID, o.CustomerName, o.QuantityKg, o.AmountINR, o.PaymentStatus, o.Verified, o.Edited, o.DateTime)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o := &domain.Order{}
	var dateTime time.Time
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.MemberID, &o.EventID, &o.ItemID, &o.CustomerName, &o.QuantityKg, &o.AmountINR, &o.PaymentStatus, &o.Verified, &o.Edited, &dateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.DateTime = dateTime.UTC().Format(time.RFC3339)
	return o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	o.DateTime = time.Now().UTC().Format(time.RFC3339)
	query := `UPDATE orders SET item_id=$1, customer_name=$2, quantity_kg=$3, amount_inr=$4, verified=$5, edited=$6, date_time=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, o.ItemID, o.CustomerName, o.QuantityKg, o.AmountINR, o.Verified, o.Edited, o.DateTime, o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE event_id = $1 ORDER BY date_time DESC`
	return r.list(ctx, query, eventID)
}

func (r *orderRepository) ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE member_id = $1 AND event_id = $2 ORDER BY date_time DESC`
	return r.list(ctx, query, memberID, eventID)
}

func (r *orderRepository) ListUnverified(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE verified = false ORDER BY date_time`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var dateTime time.Time
		if err := rows.Scan(&o.ID, &o.MemberID, &o.EventID, &o.ItemID, &o.CustomerName, &o.QuantityKg, &o.AmountINR, &o.PaymentStatus, &o.Verified, &o.Edited, &dateTime); err != nil {
			return nil, err
		}
		o.DateTime = dateTime.UTC().Format(time.RFC3339)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Verify flips the order to verified and decrements the item's stock in
// one transaction. The order row is locked first so two verifiers of
// the same order serialize, and the stock subtraction is a conditional
// update so verifiers of different orders against the same item cannot
// jointly overdraw it.
func (r *orderRepository) Verify(ctx context.Context, orderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID string
	var qtyKg float64
	var verified bool
	err = tx.QueryRowContext(ctx,
		`SELECT item_id, quantity_kg, verified FROM orders WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&itemID, &qtyKg, &verified)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if verified {
		return domain.ErrAlreadyVerified
	}

	if err := decrementStockTx(ctx, tx, itemID, qtyKg); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET verified = true, edited = false WHERE id = $1`, orderID); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateVerified inserts a pre-verified order and decrements stock in
// the same transaction. Equivalent to Create followed immediately by
// Verify with no intervening stock change.
func (r *orderRepository) CreateVerified(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Verified = true
	o.Edited = false
	o.DateTime = time.Now().UTC().Format(time.RFC3339)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := decrementStockTx(ctx, tx, o.ItemID, o.QuantityKg); err != nil {
		return err
	}

	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := tx.ExecContext(ctx, query,
		o.ID, o.MemberID, o.EventID, o.ItemID, o.CustomerName, o.QuantityKg, o.AmountINR, o.PaymentStatus, o.Verified, o.Edited, o.DateTime); err != nil {
		return err
	}
	return tx.Commit()
}

func decrementStockTx(ctx context.Context, tx *sql.Tx, itemID string, qtyKg float64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE items SET available_stock_kg = available_stock_kg - $1 WHERE id = $2 AND available_stock_kg >= $1`,
		qtyKg, itemID)
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

	var name string
	var availableKg float64
	err = tx.QueryRowContext(ctx, `SELECT name, available_stock_kg FROM items WHERE id = $1`, itemID).Scan(&name, &availableKg)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("stock check failed: %w", err)
	}
	return &domain.InsufficientStockError{ItemName: name, AvailableKg: availableKg, RequestedKg: qtyKg}
}
