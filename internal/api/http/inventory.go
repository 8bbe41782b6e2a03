package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sainath-backend/internal/service"
)

type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type addItemRequest struct {
	Name           string  `json:"name"`
	InitialStockKg float64 `json:"initial_stock_kg"`
}

func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	eventID := mux.Vars(r)["event_id"]
	item, err := h.inventory.AddItem(r.Context(), userID(r), eventID, req.Name, req.InitialStockKg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ListItems(r.Context(), userID(r), mux.Vars(r)["event_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type stockRequest struct {
	QuantityKg float64 `json:"quantity_kg"`
}

func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.inventory.AddStock(r.Context(), userID(r), mux.Vars(r)["id"], req.QuantityKg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *InventoryHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.inventory.SetStock(r.Context(), userID(r), mux.Vars(r)["id"], req.QuantityKg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func (h *InventoryHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.ParseFloat(r.URL.Query().Get("quantity_kg"), 64)
	if err != nil || qty <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quantity_kg"})
		return
	}
	ok, err := h.inventory.CheckAvailability(r.Context(), userID(r), mux.Vars(r)["id"], qty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Available: ok})
}
