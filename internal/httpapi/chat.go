package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stupiduntilnot/voxchat/internal/chat"
	"github.com/stupiduntilnot/voxchat/internal/db"
)

type chatRequest struct {
	TranscriptionID int64  `json:"transcription_id"`
	Message         string `json:"message"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// createChatMessage runs one chat turn. Status codes distinguish the failure
// kinds the caller needs: 404 means nothing was written, 502 means the user
// message was stored but no reply was generated.
func (h *Handler) createChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TranscriptionID <= 0 {
		respondError(w, http.StatusBadRequest, "transcription_id must be positive")
		return
	}

	answer, err := h.Chat.HandleTurn(r.Context(), req.TranscriptionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrTranscriptionNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, db.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, chat.ErrProvider):
			respondError(w, http.StatusBadGateway, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transcription id")
		return
	}

	messages, err := h.Chat.History(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []db.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, messages)
}
