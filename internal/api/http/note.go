package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sainath-backend/internal/service"
)

type NoteHandler struct {
	notes service.NoteService
}

func NewNoteHandler(notes service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteRequest struct {
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
}

func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	eventID := mux.Vars(r)["event_id"]
	note, err := h.notes.AddNote(r.Context(), userID(r), eventID, req.Content, req.ImageURLs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	note, err := h.notes.EditNote(r.Context(), userID(r), mux.Vars(r)["id"], req.Content, req.ImageURLs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNote(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListNotes(r.Context(), userID(r), mux.Vars(r)["event_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}
