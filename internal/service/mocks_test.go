package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sainath-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListMembers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) GetHost(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Item, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) IncreaseStock(ctx context.Context, itemID string, qtyKg float64) error {
	args := m.Called(ctx, itemID, qtyKg)
	return args.Error(0)
}
func (m *MockItemRepo) SetStock(ctx context.Context, itemID string, newQtyKg float64) error {
	args := m.Called(ctx, itemID, newQtyKg)
	return args.Error(0)
}
func (m *MockItemRepo) DecrementStock(ctx context.Context, itemID string, qtyKg float64) error {
	args := m.Called(ctx, itemID, qtyKg)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Order, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Order, error) {
	args := m.Called(ctx, memberID, eventID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListUnverified(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Verify(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
func (m *MockOrderRepo) CreateVerified(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) Verify(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Expense, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) ListUnverified(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendJoinRequestNotification(ctx context.Context, hostEmail, memberName, memberEmail string) error {
	args := m.Called(ctx, hostEmail, memberName, memberEmail)
	return args.Error(0)
}
func (m *MockEmailService) SendApprovalNotification(ctx context.Context, memberEmail, memberName string) error {
	args := m.Called(ctx, memberEmail, memberName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingVerificationDigest(ctx context.Context, hostEmail string, orderCount, expenseCount int) error {
	args := m.Called(ctx, hostEmail, orderCount, expenseCount)
	return args.Error(0)
}

func hostUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Host", Email: "host@example.com", Role: domain.RoleHost, Status: domain.UserStatusApproved}
}

func memberUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Member", Email: "member@example.com", Role: domain.RoleMember, Status: domain.UserStatusApproved}
}

func pendingUser(id string) *domain.User {
	u := memberUser(id)
	u.Status = domain.UserStatusPending
	return u
}
