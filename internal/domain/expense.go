package domain

// Expense is a cost entry logged against an event. Expenses added by
// the host are verified immediately; member expenses stay pending until
// the host verifies them. Verification is one-way and has no stock
// interaction.
type Expense struct {
	ID        string  `json:"id"`
	AddedByID string  `json:"added_by_id"`
	EventID   string  `json:"event_id"`
	Name      string  `json:"name"`
	AmountINR float64 `json:"amount_inr"`
	Verified  bool    `json:"verified"`
	DateTime  string  `json:"date_time"`
}

// ExpenseSummary is a derived read-only view of expense totals for one
// event. Member-submitted expenses count toward the totals only once
// verified; host expenses are auto-verified so they always count.
type ExpenseSummary struct {
	EventID          string             `json:"event_id"`
	TotalINR         float64            `json:"total_inr"`
	VerifiedCount    int32              `json:"verified_count"`
	PendingCount     int32              `json:"pending_count"`
	TotalsByMemberID map[string]float64 `json:"totals_by_member_id"`
}
