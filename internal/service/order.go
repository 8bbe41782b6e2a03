package service

import (
	"context"
	"errors"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	hub       *realtime.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	hub *realtime.Hub,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		hub:       hub,
	}
}

func validateOrderInput(customerName string, quantityKg, amountINR float64) error {
	if customerName == "" {
		return &domain.ValidationError{Field: "customer_name", Reason: "required"}
	}
	if quantityKg <= 0 {
		return &domain.ValidationError{Field: "quantity_kg", Reason: "must be positive"}
	}
	if amountINR < 0 {
		return &domain.ValidationError{Field: "amount_inr", Reason: "must not be negative"}
	}
	return nil
}

// checkItemAvailability reads the item and rejects quantities the
// current stock cannot cover. Submission-time feedback only: stock may
// still change before verification, which re-checks inside the
// decrement itself.
func (s *orderService) checkItemAvailability(ctx context.Context, itemID string, quantityKg float64) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.HasStock(quantityKg) {
		return nil, &domain.InsufficientStockError{
			ItemName:    item.Name,
			AvailableKg: item.AvailableStockKg,
			RequestedKg: quantityKg,
		}
	}
	return item, nil
}

func (s *orderService) AddOrder(ctx context.Context, actorID, eventID, itemID, customerName string, quantityKg, amountINR float64) (*domain.Order, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if err := validateOrderInput(customerName, quantityKg, amountINR); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if _, err := s.checkItemAvailability(ctx, itemID, quantityKg); err != nil {
		return nil, err
	}

	order := &domain.Order{
		MemberID:      actor.ID,
		EventID:       eventID,
		ItemID:        itemID,
		CustomerName:  customerName,
		QuantityKg:    quantityKg,
		AmountINR:     amountINR,
		PaymentStatus: domain.PaymentStatusBaki,
		Verified:      false,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("order created", "order_id", order.ID, "member_id", actor.ID, "item_id", itemID, "quantity_kg", quantityKg)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionCreated, RecordID: order.ID})
	return order, nil
}

// EditOrder overwrites the member-editable fields and drops the order
// back to unverified. A previously verified order keeps its historical
// decrement; the new quantity only hits stock when the host verifies
// again.
func (s *orderService) EditOrder(ctx context.Context, actorID, orderID string, update domain.OrderUpdate) (*domain.Order, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !access.CanEditOrder(actor, order) {
		return nil, domain.ErrPermissionDenied
	}
	if err := validateOrderInput(update.CustomerName, update.QuantityKg, update.AmountINR); err != nil {
		return nil, err
	}
	if _, err := s.checkItemAvailability(ctx, update.ItemID, update.QuantityKg); err != nil {
		return nil, err
	}

	order.ItemID = update.ItemID
	order.CustomerName = update.CustomerName
	order.QuantityKg = update.QuantityKg
	order.AmountINR = update.AmountINR
	order.Verified = false
	order.Edited = true
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("order edited", "order_id", order.ID, "member_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionUpdated, RecordID: order.ID})
	return order, nil
}

func (s *orderService) VerifyOrder(ctx context.Context, actorID, orderID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanVerify(actor) {
		return domain.ErrPermissionDenied
	}

	// The repository applies flag flip and stock decrement as one
	// atomic unit; a stale availability read here could not be trusted
	// anyway.
	if err := s.orderRepo.Verify(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			logger.Warn("order verification declined", "order_id", orderID, "reason", err)
		}
		return err
	}

	logger.Info("order verified", "order_id", orderID, "host_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionUpdated, RecordID: orderID})
	if order, err := s.orderRepo.GetByID(ctx, orderID); err == nil {
		s.hub.Publish(realtime.Change{Collection: "items", Action: realtime.ActionUpdated, RecordID: order.ItemID})
	}
	return nil
}

func (s *orderService) RejectOrder(ctx context.Context, actorID, orderID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanVerify(actor) {
		return domain.ErrPermissionDenied
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	// Verified orders already consumed stock and cannot be rejected.
	if order.Verified {
		return domain.ErrAlreadyVerified
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	logger.Info("order rejected", "order_id", orderID, "host_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionDeleted, RecordID: orderID})
	return nil
}

func (s *orderService) DeleteOrder(ctx context.Context, actorID, orderID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !access.CanDeleteOrder(actor, order) {
		return domain.ErrPermissionDenied
	}
	if order.Verified {
		return domain.ErrAlreadyVerified
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	logger.Info("order deleted", "order_id", orderID, "member_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionDeleted, RecordID: orderID})
	return nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, actorID, orderID string, status domain.PaymentStatus) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !domain.ValidPaymentStatus(status) {
		return &domain.ValidationError{Field: "payment_status", Reason: "unknown status"}
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !access.CanUpdatePayment(actor, order) {
		return domain.ErrPermissionDenied
	}
	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionUpdated, RecordID: orderID})
	return nil
}

// RecordConsumption is the host fast path: the order is born verified
// and the stock decrement commits in the same transaction. A declined
// check leaves no order and untouched stock.
func (s *orderService) RecordConsumption(ctx context.Context, actorID, memberID, eventID, itemID, customerName string, quantityKg, amountINR float64) (*domain.Order, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !access.CanRecordConsumption(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if err := validateOrderInput(customerName, quantityKg, amountINR); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		MemberID:      memberID,
		EventID:       eventID,
		ItemID:        itemID,
		CustomerName:  customerName,
		QuantityKg:    quantityKg,
		AmountINR:     amountINR,
		PaymentStatus: domain.PaymentStatusBaki,
	}
	if err := s.orderRepo.CreateVerified(ctx, order); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			logger.Warn("consumption recording declined", "item_id", itemID, "quantity_kg", quantityKg, "reason", err)
		}
		return nil, err
	}

	logger.Info("consumption recorded", "order_id", order.ID, "member_id", memberID, "item_id", itemID, "quantity_kg", quantityKg)
	s.hub.Publish(realtime.Change{Collection: "orders", Action: realtime.ActionCreated, RecordID: order.ID})
	s.hub.Publish(realtime.Change{Collection: "items", Action: realtime.ActionUpdated, RecordID: itemID})
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, actorID, orderID string) (*domain.Order, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !access.CanReadOrder(actor, order) {
		return nil, domain.ErrPermissionDenied
	}
	return order, nil
}

// ListOrders applies the visibility rule: the host sees every order in
// the event, a member sees only their own.
func (s *orderService) ListOrders(ctx context.Context, actorID, eventID string) ([]domain.Order, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsHost() {
		return s.orderRepo.ListByEvent(ctx, eventID)
	}
	return s.orderRepo.ListByMember(ctx, actor.ID, eventID)
}
