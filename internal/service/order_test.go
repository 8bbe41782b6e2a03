package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
	"sainath-backend/internal/service"
)

func newOrderService(orderRepo repository.OrderRepository, itemRepo repository.ItemRepository, eventRepo repository.EventRepository, userRepo repository.UserRepository) service.OrderService {
	return service.NewOrderService(orderRepo, itemRepo, eventRepo, userRepo, realtime.NewHub())
}

func TestAddOrder_CreatesUnverifiedWithBakiPayment(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	eventRepo.On("GetByID", mock.Anything, "event-1").Return(&domain.Event{ID: "event-1"}, nil)
	itemRepo.On("GetByID", mock.Anything, "item-1").Return(&domain.Item{ID: "item-1", Name: "Kaju Katli", AvailableStockKg: 50}, nil)
	orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return !o.Verified && o.PaymentStatus == domain.PaymentStatusBaki && o.MemberID == "member-1"
	})).Return(nil)

	order, err := svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "Sharma ji", 5, 4000)
	require.NoError(t, err)
	assert.False(t, order.Verified)
	assert.Equal(t, domain.PaymentStatusBaki, order.PaymentStatus)
	orderRepo.AssertExpectations(t)
}

func TestAddOrder_RejectsOverStockQuantity(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	eventRepo.On("GetByID", mock.Anything, "event-1").Return(&domain.Event{ID: "event-1"}, nil)
	itemRepo.On("GetByID", mock.Anything, "item-1").Return(&domain.Item{ID: "item-1", Name: "Kaju Katli", AvailableStockKg: 10}, nil)

	_, err := svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "Sharma ji", 12, 9600)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddOrder_ValidatesInput(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)

	_, err := svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "", 5, 4000)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "Sharma ji", 0, 4000)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "Sharma ji", 5, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddOrder_PendingActorDenied(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(pendingUser("member-1"), nil)

	_, err := svc.AddOrder(context.Background(), "member-1", "event-1", "item-1", "Sharma ji", 5, 4000)
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestEditOrder_ResetsVerification(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	orderRepo.On("GetByID", mock.Anything, "order-1").Return(&domain.Order{
		ID: "order-1", MemberID: "member-1", ItemID: "item-1", Verified: true,
	}, nil)
	itemRepo.On("GetByID", mock.Anything, "item-1").Return(&domain.Item{ID: "item-1", AvailableStockKg: 50}, nil)
	orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return !o.Verified && o.Edited && o.QuantityKg == 7
	})).Return(nil)

	order, err := svc.EditOrder(context.Background(), "member-1", "order-1", domain.OrderUpdate{
		CustomerName: "Sharma ji", ItemID: "item-1", QuantityKg: 7, AmountINR: 5600,
	})
	require.NoError(t, err)
	assert.False(t, order.Verified)
	assert.True(t, order.Edited)
	orderRepo.AssertExpectations(t)
}

func TestEditOrder_OverStockQuantityLeavesOrderUntouched(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	orderRepo.On("GetByID", mock.Anything, "order-1").Return(&domain.Order{
		ID: "order-1", MemberID: "member-1", ItemID: "item-1", QuantityKg: 30, Verified: true,
	}, nil)
	itemRepo.On("GetByID", mock.Anything, "item-1").Return(&domain.Item{
		ID: "item-1", Name: "Kaju Katli", AvailableStockKg: 20,
	}, nil)

	_, err := svc.EditOrder(context.Background(), "member-1", "order-1", domain.OrderUpdate{
		CustomerName: "Sharma ji", ItemID: "item-1", QuantityKg: 25, AmountINR: 20000,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	order, err := orderRepo.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.Verified)
	assert.Equal(t, 30.0, order.QuantityKg)
}

func TestEditOrder_OnlyOwnerMayEdit(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-2").Return(memberUser("member-2"), nil)
	orderRepo.On("GetByID", mock.Anything, "order-1").Return(&domain.Order{ID: "order-1", MemberID: "member-1"}, nil)

	_, err := svc.EditOrder(context.Background(), "member-2", "order-1", domain.OrderUpdate{
		CustomerName: "Sharma ji", ItemID: "item-1", QuantityKg: 7, AmountINR: 5600,
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyOrder_HostOnly(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)

	err := svc.VerifyOrder(context.Background(), "member-1", "order-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	orderRepo.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestVerifyOrder_PropagatesInsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	orderRepo.On("Verify", mock.Anything, "order-1").Return(&domain.InsufficientStockError{
		ItemName: "Kaju Katli", AvailableKg: 4, RequestedKg: 6,
	})

	err := svc.VerifyOrder(context.Background(), "host-1", "order-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRejectOrder_VerifiedOrderRefused(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	orderRepo.On("GetByID", mock.Anything, "order-1").Return(&domain.Order{ID: "order-1", Verified: true}, nil)

	err := svc.RejectOrder(context.Background(), "host-1", "order-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteOrder_VerifiedOrderRefused(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	orderRepo.On("GetByID", mock.Anything, "order-1").Return(&domain.Order{ID: "order-1", MemberID: "member-1", Verified: true}, nil)

	err := svc.DeleteOrder(context.Background(), "member-1", "order-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRecordConsumption_CreatesVerifiedOrder(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	eventRepo.On("GetByID", mock.Anything, "event-1").Return(&domain.Event{ID: "event-1"}, nil)
	orderRepo.On("CreateVerified", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.MemberID == "member-1" && o.QuantityKg == 6
	})).Return(nil)

	order, err := svc.RecordConsumption(context.Background(), "host-1", "member-1", "event-1", "item-1", "Sharma ji", 6, 4800)
	require.NoError(t, err)
	assert.Equal(t, "member-1", order.MemberID)
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordConsumption_MemberDenied(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)

	_, err := svc.RecordConsumption(context.Background(), "member-1", "member-1", "event-1", "item-1", "Sharma ji", 6, 4800)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	orderRepo.AssertNotCalled(t, "CreateVerified", mock.Anything, mock.Anything)
}

func TestRecordConsumption_DeclinedLeavesNoOrder(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	eventRepo.On("GetByID", mock.Anything, "event-1").Return(&domain.Event{ID: "event-1"}, nil)
	orderRepo.On("CreateVerified", mock.Anything, mock.Anything).Return(&domain.InsufficientStockError{
		ItemName: "Kaju Katli", AvailableKg: 50, RequestedKg: 60,
	})

	order, err := svc.RecordConsumption(context.Background(), "host-1", "member-1", "event-1", "item-1", "Sharma ji", 60, 48000)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, order)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListOrders_HostSeesAllMemberSeesOwn(t *testing.T) {
	orderRepo := new(MockOrderRepo)
	itemRepo := new(MockItemRepo)
	eventRepo := new(MockEventRepo)
	userRepo := new(MockUserRepo)
	svc := newOrderService(orderRepo, itemRepo, eventRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	userRepo.On("GetByID", mock.Anything, "member-1").Return(memberUser("member-1"), nil)
	orderRepo.On("ListByEvent", mock.Anything, "event-1").Return([]domain.Order{{ID: "a"}, {ID: "b"}}, nil)
	orderRepo.On("ListByMember", mock.Anything, "member-1", "event-1").Return([]domain.Order{{ID: "a"}}, nil)

	all, err := svc.ListOrders(context.Background(), "host-1", "event-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListOrders(context.Background(), "member-1", "event-1")
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

// raceOrderRepo is an in-memory OrderRepository with the same
// conditional-decrement contract as the SQL implementation, used to
// exercise concurrent verification.
type raceOrderRepo struct {
	mu     sync.Mutex
	stock  map[string]float64
	orders map[string]*domain.Order
}

func (r *raceOrderRepo) Create(ctx context.Context, o *domain.Order) error { return nil }
func (r *raceOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}
func (r *raceOrderRepo) Update(ctx context.Context, o *domain.Order) error { return nil }
func (r *raceOrderRepo) Delete(ctx context.Context, id string) error       { return nil }
func (r *raceOrderRepo) UpdatePaymentStatus(ctx context.Context, id string, s domain.PaymentStatus) error {
	return nil
}
func (r *raceOrderRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Order, error) {
	return nil, nil
}
func (r *raceOrderRepo) ListByMember(ctx context.Context, memberID, eventID string) ([]domain.Order, error) {
	return nil, nil
}
func (r *raceOrderRepo) ListUnverified(ctx context.Context) ([]domain.Order, error) {
	return nil, nil
}
func (r *raceOrderRepo) Verify(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Verified {
		return domain.ErrAlreadyVerified
	}
	if r.stock[o.ItemID] < o.QuantityKg {
		return &domain.InsufficientStockError{AvailableKg: r.stock[o.ItemID], RequestedKg: o.QuantityKg}
	}
	r.stock[o.ItemID] -= o.QuantityKg
	o.Verified = true
	return nil
}
func (r *raceOrderRepo) CreateVerified(ctx context.Context, o *domain.Order) error { return nil }

func TestVerifyOrder_ConcurrentOverlappingOrders(t *testing.T) {
	repo := &raceOrderRepo{
		stock: map[string]float64{"item-1": 10},
		orders: map[string]*domain.Order{
			"order-a": {ID: "order-a", ItemID: "item-1", QuantityKg: 6},
			"order-b": {ID: "order-b", ItemID: "item-1", QuantityKg: 6},
		},
	}
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", mock.Anything, "host-1").Return(hostUser("host-1"), nil)
	svc := newOrderService(repo, new(MockItemRepo), new(MockEventRepo), userRepo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{"order-a", "order-b"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = svc.VerifyOrder(context.Background(), "host-1", id)
		}(i, id)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, successes, "exactly one of the overlapping orders may verify")
	assert.Equal(t, 4.0, repo.stock["item-1"])
}
