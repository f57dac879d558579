package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/markdave123-py/dataroom/internal/core"
	"github.com/markdave123-py/dataroom/internal/logger"
	"github.com/markdave123-py/dataroom/internal/models"
	"github.com/markdave123-py/dataroom/internal/services"
)

type ChatHandler struct {
	chat *services.ChatService
	log  *logger.Logger
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat, log: logger.New("chat_handler")}
}

type chatRequest struct {
	Message string `json:"message"`
}

// PostChat answers one question against the dataroom.
func (h *ChatHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chat.Handle(r.Context(), req.Message)
	if err != nil {
		h.log.Error("chat failed", "error", err)
		if errors.Is(err, core.ErrProviderUnavailable) {
			// Surface the configuration problem; the message names the
			// missing API key.
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate response")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// GetMessages returns the chat log, oldest first.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chat.Messages(r.Context())
	if err != nil {
		h.log.Error("list messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// ClearMessages wipes the chat log.
func (h *ChatHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.Clear(r.Context()); err != nil {
		h.log.Error("clear messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear messages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
