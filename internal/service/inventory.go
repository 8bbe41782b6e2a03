package service

import (
	"context"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type inventoryService struct {
	itemRepo  repository.ItemRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	hub       *realtime.Hub
}

func NewInventoryService(
	itemRepo repository.ItemRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	hub *realtime.Hub,
) InventoryService {
	return &inventoryService{
		itemRepo:  itemRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		hub:       hub,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, actorID, eventID, name string, initialStockKg float64) (*domain.Item, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !access.CanManageInventory(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if initialStockKg < 0 {
		return nil, &domain.ValidationError{Field: "initial_stock_kg", Reason: "must not be negative"}
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	item := &domain.Item{
		EventID:          eventID,
		Name:             name,
		AvailableStockKg: initialStockKg,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("item created", "item_id", item.ID, "event_id", eventID, "name", name, "initial_stock_kg", initialStockKg)
	s.hub.Publish(realtime.Change{Collection: "items", Action: realtime.ActionCreated, RecordID: item.ID})
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, actorID, eventID string) ([]domain.Item, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByEvent(ctx, eventID)
}

func (s *inventoryService) AddStock(ctx context.Context, actorID, itemID string, qtyKg float64) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanManageInventory(actor) {
		return domain.ErrPermissionDenied
	}
	if qtyKg <= 0 {
		return &domain.ValidationError{Field: "quantity_kg", Reason: "must be positive"}
	}
	if err := s.itemRepo.IncreaseStock(ctx, itemID, qtyKg); err != nil {
		return err
	}

	logger.Info("stock increased", "item_id", itemID, "quantity_kg", qtyKg, "host_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "items", Action: realtime.ActionUpdated, RecordID: itemID})
	return nil
}

func (s *inventoryService) SetStock(ctx context.Context, actorID, itemID string, newQtyKg float64) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanManageInventory(actor) {
		return domain.ErrPermissionDenied
	}
	if newQtyKg < 0 {
		return &domain.ValidationError{Field: "quantity_kg", Reason: "must not be negative"}
	}
	if err := s.itemRepo.SetStock(ctx, itemID, newQtyKg); err != nil {
		return err
	}

	logger.Info("stock overwritten", "item_id", itemID, "quantity_kg", newQtyKg, "host_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "items", Action: realtime.ActionUpdated, RecordID: itemID})
	return nil
}

func (s *inventoryService) CheckAvailability(ctx context.Context, actorID, itemID string, qtyKg float64) (bool, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return false, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	return item.HasStock(qtyKg), nil
}
