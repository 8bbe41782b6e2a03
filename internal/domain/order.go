package domain

type PaymentStatus string

const (
	PaymentStatusBaki   PaymentStatus = "Baki"
	PaymentStatusCash   PaymentStatus = "Cash"
	PaymentStatusOnline PaymentStatus = "Online"
)

// Order is one consumption transaction against an item's stock.
// Stock is decremented exactly once, at verification time. An edit to
// an order clears the verified flag, so the order must pass
// verification (and the stock check) again before it affects stock.
type Order struct {
	ID            string        `json:"id"`
	MemberID      string        `json:"member_id"`
	EventID       string        `json:"event_id"`
	ItemID        string        `json:"item_id"`
	CustomerName  string        `json:"customer_name"`
	QuantityKg    float64       `json:"quantity_kg"`
	AmountINR     float64       `json:"amount_inr"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Verified      bool          `json:"verified"`
	Edited        bool          `json:"edited"`
	DateTime      string        `json:"date_time"`
}

// OrderUpdate carries the member-editable fields of an order.
type OrderUpdate struct {
	CustomerName string  `json:"customer_name"`
	ItemID       string  `json:"item_id"`
	QuantityKg   float64 `json:"quantity_kg"`
	AmountINR    float64 `json:"amount_inr"`
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusBaki, PaymentStatusCash, PaymentStatusOnline:
		return true
	}
	return false
}
