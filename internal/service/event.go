package service

import (
	"context"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	hub       *realtime.Hub
}

func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository, hub *realtime.Hub) EventService {
	return &eventService{eventRepo: eventRepo, userRepo: userRepo, hub: hub}
}

func (s *eventService) CreateEvent(ctx context.Context, actorID, name string, year int32, imageURL string) (*domain.Event, error) {
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
	if year < 2000 || year > 2100 {
		return nil, &domain.ValidationError{Field: "year", Reason: "out of range"}
	}

	event := &domain.Event{
		Name:     name,
		Year:     year,
		ImageURL: imageURL,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info("event created", "event_id", event.ID, "name", name, "year", year)
	s.hub.Publish(realtime.Change{Collection: "events", Action: realtime.ActionCreated, RecordID: event.ID})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context, actorID string) ([]domain.Event, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx)
}
