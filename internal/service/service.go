package service

import (
	"context"
	"io"

	"sainath-backend/internal/domain"
)

type AuthService interface {
	// RequestToJoin registers a new member in pending state; the host
	// must approve the account before it can act.
	RequestToJoin(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error) // user, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
	ChangeEmail(ctx context.Context, userID, newEmail, currentPassword string) error
}

type AdminService interface {
	ListPendingMembers(ctx context.Context, actorID string) ([]domain.User, error)
	ApproveMember(ctx context.Context, actorID, memberID string) error
	ListMembers(ctx context.Context, actorID string) ([]domain.User, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, actorID, name string, year int32, imageURL string) (*domain.Event, error)
	GetEvent(ctx context.Context, actorID, eventID string) (*domain.Event, error)
	ListEvents(ctx context.Context, actorID string) ([]domain.Event, error)
}

// InventoryService owns every stock mutation outside order
// verification, and the advisory availability check.
type InventoryService interface {
	AddItem(ctx context.Context, actorID, eventID, name string, initialStockKg float64) (*domain.Item, error)
	ListItems(ctx context.Context, actorID, eventID string) ([]domain.Item, error)
	// AddStock increases stock additively (manual restock).
	AddStock(ctx context.Context, actorID, itemID string, qtyKg float64) error
	// SetStock overwrites the stock level outright (administrative
	// correction, bypasses consumption accounting).
	SetStock(ctx context.Context, actorID, itemID string, newQtyKg float64) error
	// CheckAvailability is a pure read with no side effect. It gives
	// fast feedback at submission time; the authoritative check happens
	// inside the decrement at verification time.
	CheckAvailability(ctx context.Context, actorID, itemID string, qtyKg float64) (bool, error)
}

// OrderService is the order workflow engine plus the host's direct
// consumption recording fast path.
type OrderService interface {
	AddOrder(ctx context.Context, actorID, eventID, itemID, customerName string, quantityKg, amountINR float64) (*domain.Order, error)
	EditOrder(ctx context.Context, actorID, orderID string, update domain.OrderUpdate) (*domain.Order, error)
	VerifyOrder(ctx context.Context, actorID, orderID string) error
	RejectOrder(ctx context.Context, actorID, orderID string) error
	DeleteOrder(ctx context.Context, actorID, orderID string) error
	UpdatePaymentStatus(ctx context.Context, actorID, orderID string, status domain.PaymentStatus) error
	// RecordConsumption records a sale on a member's behalf as one
	// atomic create+verify+decrement. Identical stock outcome to
	// AddOrder followed by VerifyOrder with no intervening change.
	RecordConsumption(ctx context.Context, actorID, memberID, eventID, itemID, customerName string, quantityKg, amountINR float64) (*domain.Order, error)
	GetOrder(ctx context.Context, actorID, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, actorID, eventID string) ([]domain.Order, error)
}

type ExpenseService interface {
	AddExpense(ctx context.Context, actorID, eventID, name string, amountINR float64) (*domain.Expense, error)
	EditExpense(ctx context.Context, actorID, expenseID, newName string, newAmountINR float64) (*domain.Expense, error)
	VerifyExpense(ctx context.Context, actorID, expenseID string) error
	DeleteExpense(ctx context.Context, actorID, expenseID string) error
	ListExpenses(ctx context.Context, actorID, eventID string) ([]domain.Expense, error)
	// Summary aggregates verified expenses only, so pending member
	// submissions never inflate host-visible totals.
	Summary(ctx context.Context, actorID, eventID string) (*domain.ExpenseSummary, error)
}

type NoteService interface {
	AddNote(ctx context.Context, actorID, eventID, content string, imageURLs []string) (*domain.Note, error)
	EditNote(ctx context.Context, actorID, noteID, newContent string, newImageURLs []string) (*domain.Note, error)
	DeleteNote(ctx context.Context, actorID, noteID string) error
	ListNotes(ctx context.Context, actorID, eventID string) ([]domain.Note, error)
}

type FileService interface {
	UploadFile(ctx context.Context, actorID, name string, content io.Reader) (*domain.StoredFile, error)
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)
	ListFiles(ctx context.Context, actorID string) ([]domain.StoredFile, error)
	DeleteFile(ctx context.Context, actorID, fileID string) error
}

type EmailService interface {
	SendJoinRequestNotification(ctx context.Context, hostEmail, memberName, memberEmail string) error
	SendApprovalNotification(ctx context.Context, memberEmail, memberName string) error
	SendPendingVerificationDigest(ctx context.Context, hostEmail string, orderCount, expenseCount int) error
}
