package repository

import (
	"context"

	"sainath-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error)
	ListMembers(ctx context.Context) ([]domain.User, error)
	GetHost(ctx context.Context) (*domain.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Item, error)

	// IncreaseStock adds qty kilograms of stock.
	IncreaseStock(ctx context.Context, itemID string, qtyKg float64) error
	// SetStock overwrites the available stock regardless of the current
	// value. Administrative correction; bypasses consumption accounting.
	SetStock(ctx context.Context, itemID string, newQtyKg float64) error
	// DecrementStock subtracts qty kilograms only if the current stock
	// covers it, as one atomic conditional update. Returns
	// domain.ErrInsufficientStock when the condition fails.
	DecrementStock(ctx context.Context, itemID string, qtyKg float64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Order, error)
	ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Order, error)
	ListUnverified(ctx context.Context) ([]domain.Order, error)

	// Verify marks the order verified and decrements the item's stock in
	// one transaction. Returns domain.ErrAlreadyVerified when the order
	// is no longer pending, domain.ErrInsufficientStock when the stock
	// condition fails; in both cases nothing is mutated.
	Verify(ctx context.Context, orderID string) error
	// CreateVerified inserts an already-verified order and decrements
	// the item's stock in one transaction (host direct consumption
	// entry). Either both effects commit or neither does.
	CreateVerified(ctx context.Context, order *domain.Order) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
	// Verify flips the pending expense to verified. Returns
	// domain.ErrAlreadyVerified when it was verified already, so a
	// double verify can never double count in aggregation.
	Verify(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Expense, error)
	ListUnverified(ctx context.Context) ([]domain.Expense, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
	ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Note, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Note, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.StoredFile) error
	GetByID(ctx context.Context, id string) (*domain.StoredFile, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.StoredFile, error)
}
