// Package http exposes the application over a JSON REST API plus one
// server-sent-events stream for change notifications.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sainath-backend/internal/realtime"
	"sainath-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	Admin     service.AdminService
	Events    service.EventService
	Inventory service.InventoryService
	Orders    service.OrderService
	Expenses  service.ExpenseService
	Notes     service.NoteService
	Files     service.FileService
}

func NewRouter(svcs Services, authMw *AuthMiddleware, hub *realtime.Hub) *mux.Router {
	root := mux.NewRouter()
	api := root.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	adminHandler := NewAdminHandler(svcs.Admin)
	eventHandler := NewEventHandler(svcs.Events)
	inventoryHandler := NewInventoryHandler(svcs.Inventory)
	orderHandler := NewOrderHandler(svcs.Orders)
	expenseHandler := NewExpenseHandler(svcs.Expenses)
	noteHandler := NewNoteHandler(svcs.Notes)
	fileHandler := NewFileHandler(svcs.Files)
	changesHandler := NewChangesHandler(hub)

	// Public endpoints.
	api.HandleFunc("/auth/join", authHandler.RequestToJoin).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Everything else requires an authenticated subject.
	protected := api.NewRoute().Subrouter()
	protected.Use(authMw.Handler)

	protected.HandleFunc("/auth/profile", authHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/password", authHandler.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/auth/email", authHandler.ChangeEmail).Methods(http.MethodPut)

	protected.HandleFunc("/members", adminHandler.ListMembers).Methods(http.MethodGet)
	protected.HandleFunc("/members/pending", adminHandler.ListPendingMembers).Methods(http.MethodGet)
	protected.HandleFunc("/members/{id}/approve", adminHandler.ApproveMember).Methods(http.MethodPost)

	protected.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id}", eventHandler.Get).Methods(http.MethodGet)

	protected.HandleFunc("/events/{event_id}/items", inventoryHandler.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/events/{event_id}/items", inventoryHandler.ListItems).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id}/stock/add", inventoryHandler.AddStock).Methods(http.MethodPost)
	protected.HandleFunc("/items/{id}/stock", inventoryHandler.SetStock).Methods(http.MethodPut)
	protected.HandleFunc("/items/{id}/availability", inventoryHandler.CheckAvailability).Methods(http.MethodGet)

	protected.HandleFunc("/events/{event_id}/orders", orderHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/events/{event_id}/orders", orderHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/events/{event_id}/consumptions", orderHandler.RecordConsumption).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", orderHandler.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/orders/{id}", orderHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/orders/{id}/verify", orderHandler.Verify).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id}/reject", orderHandler.Reject).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id}/payment", orderHandler.UpdatePaymentStatus).Methods(http.MethodPut)

	protected.HandleFunc("/events/{event_id}/expenses", expenseHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/events/{event_id}/expenses", expenseHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/events/{event_id}/expenses/summary", expenseHandler.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id}", expenseHandler.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/expenses/{id}", expenseHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/expenses/{id}/verify", expenseHandler.Verify).Methods(http.MethodPost)

	protected.HandleFunc("/events/{event_id}/notes", noteHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/events/{event_id}/notes", noteHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notes/{id}", noteHandler.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/files", fileHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/files", fileHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/files/download", fileHandler.Download).Methods(http.MethodGet)
	protected.HandleFunc("/files/{id}", fileHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/changes", changesHandler.Stream).Methods(http.MethodGet)

	return root
}
