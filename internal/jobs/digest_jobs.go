package jobs

import (
	"context"

	"sainath-backend/internal/logger"
)

// SendPendingVerificationDigest mails the host a morning summary of
// orders and expenses still waiting for verification.
func (jr *JobRunner) SendPendingVerificationDigest() {
	jr.runWithRecovery("SendPendingVerificationDigest", func() {
		ctx := context.Background()

		orders, err := jr.store.Orders.ListUnverified(ctx)
		if err != nil {
			logger.Error("Failed to list unverified orders", "error", err)
			return
		}
		expenses, err := jr.store.Expenses.ListUnverified(ctx)
		if err != nil {
			logger.Error("Failed to list unverified expenses", "error", err)
			return
		}
		if len(orders) == 0 && len(expenses) == 0 {
			logger.Info("Nothing pending verification, skipping digest")
			return
		}

		host, err := jr.store.Users.GetHost(ctx)
		if err != nil {
			logger.Error("Failed to resolve host account", "error", err)
			return
		}
		if err := jr.email.SendPendingVerificationDigest(ctx, host.Email, len(orders), len(expenses)); err != nil {
			logger.Error("Failed to send pending verification digest", "error", err)
			return
		}
		logger.Info("Pending verification digest sent", "orders", len(orders), "expenses", len(expenses))
	})
}
