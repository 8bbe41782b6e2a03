package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type addOrderRequest struct {
	ItemID       string  `json:"item_id"`
	CustomerName string  `json:"customer_name"`
	QuantityKg   float64 `json:"quantity_kg"`
	AmountINR    float64 `json:"amount_inr"`
}

func (h *OrderHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	eventID := mux.Vars(r)["event_id"]
	order, err := h.orders.AddOrder(r.Context(), userID(r), eventID, req.ItemID, req.CustomerName, req.QuantityKg, req.AmountINR)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req addOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := h.orders.EditOrder(r.Context(), userID(r), mux.Vars(r)["id"], domain.OrderUpdate{
		ItemID:       req.ItemID,
		CustomerName: req.CustomerName,
		QuantityKg:   req.QuantityKg,
		AmountINR:    req.AmountINR,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.VerifyOrder(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.RejectOrder(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteOrder(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type paymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.orders.UpdatePaymentStatus(r.Context(), userID(r), mux.Vars(r)["id"], req.PaymentStatus); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type recordConsumptionRequest struct {
	MemberID     string  `json:"member_id"`
	ItemID       string  `json:"item_id"`
	CustomerName string  `json:"customer_name"`
	QuantityKg   float64 `json:"quantity_kg"`
	AmountINR    float64 `json:"amount_inr"`
}

func (h *OrderHandler) RecordConsumption(w http.ResponseWriter, r *http.Request) {
	var req recordConsumptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	eventID := mux.Vars(r)["event_id"]
	order, err := h.orders.RecordConsumption(r.Context(), userID(r), req.MemberID, eventID, req.ItemID, req.CustomerName, req.QuantityKg, req.AmountINR)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), userID(r), mux.Vars(r)["event_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
