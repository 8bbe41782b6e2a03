package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sainath-backend/internal/service"
)

type AdminHandler struct {
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListPendingMembers(w http.ResponseWriter, r *http.Request) {
	pending, err := h.admin.ListPendingMembers(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *AdminHandler) ApproveMember(w http.ResponseWriter, r *http.Request) {
	memberID := mux.Vars(r)["id"]
	if err := h.admin.ApproveMember(r.Context(), userID(r), memberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.admin.ListMembers(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}
