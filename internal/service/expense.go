package service

import (
	"context"

	"sainath-backend/internal/access"
	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	hub         *realtime.Hub
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	hub *realtime.Hub,
) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		hub:         hub,
	}
}

func validateExpenseInput(name string, amountINR float64) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if amountINR < 0 {
		return &domain.ValidationError{Field: "amount_inr", Reason: "must not be negative"}
	}
	return nil
}

// AddExpense records a spend against the event. Host expenses are
// trusted and land verified; member expenses wait for the host.
func (s *expenseService) AddExpense(ctx context.Context, actorID, eventID, name string, amountINR float64) (*domain.Expense, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if err := validateExpenseInput(name, amountINR); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		EventID:   eventID,
		AddedByID: actor.ID,
		Name:      name,
		AmountINR: amountINR,
		Verified:  access.IsAutoVerified(actor.Role),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	logger.Info("expense created", "expense_id", expense.ID, "added_by", actor.ID, "verified", expense.Verified)
	s.hub.Publish(realtime.Change{Collection: "expenses", Action: realtime.ActionCreated, RecordID: expense.ID})
	return expense, nil
}

// EditExpense rewrites name and amount only; verification state and
// attribution are untouched.
func (s *expenseService) EditExpense(ctx context.Context, actorID, expenseID, newName string, newAmountINR float64) (*domain.Expense, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !access.CanModifyExpense(actor, expense) {
		return nil, domain.ErrPermissionDenied
	}
	if err := validateExpenseInput(newName, newAmountINR); err != nil {
		return nil, err
	}

	expense.Name = newName
	expense.AmountINR = newAmountINR
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Change{Collection: "expenses", Action: realtime.ActionUpdated, RecordID: expense.ID})
	return expense, nil
}

func (s *expenseService) VerifyExpense(ctx context.Context, actorID, expenseID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !access.CanVerify(actor) {
		return domain.ErrPermissionDenied
	}
	if err := s.expenseRepo.Verify(ctx, expenseID); err != nil {
		return err
	}

	logger.Info("expense verified", "expense_id", expenseID, "host_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "expenses", Action: realtime.ActionUpdated, RecordID: expenseID})
	return nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, actorID, expenseID string) error {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !access.CanModifyExpense(actor, expense) {
		return domain.ErrPermissionDenied
	}
	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		return err
	}

	logger.Info("expense deleted", "expense_id", expenseID, "actor_id", actor.ID)
	s.hub.Publish(realtime.Change{Collection: "expenses", Action: realtime.ActionDeleted, RecordID: expenseID})
	return nil
}

// ListExpenses applies the visibility rule: the host sees every
// expense, a member sees their own plus only the verified expenses of
// others. Another member's pending submission is never exposed.
func (s *expenseService) ListExpenses(ctx context.Context, actorID, eventID string) ([]domain.Expense, error) {
	actor, err := fetchActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if actor.IsHost() {
		return expenses, nil
	}
	visible := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.AddedByID == actor.ID || e.Verified {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

// Summary totals verified expenses per member. Unverified entries are
// excluded so a pending submission cannot move the settlement numbers.
func (s *expenseService) Summary(ctx context.Context, actorID, eventID string) (*domain.ExpenseSummary, error) {
	if _, err := fetchActor(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{
		EventID:          eventID,
		TotalsByMemberID: make(map[string]float64),
	}
	for _, e := range expenses {
		if !e.Verified {
			summary.PendingCount++
			continue
		}
		summary.VerifiedCount++
		summary.TotalINR += e.AmountINR
		summary.TotalsByMemberID[e.AddedByID] += e.AmountINR
	}
	return summary, nil
}
