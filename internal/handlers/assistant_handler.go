package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"stitch-backend/internal/ai"
	"stitch-backend/pkg/utils"
)

// AssistantHandler fronts the conversational quote helper. Sessions are
// identified by a client-held UUID so no server-side state is needed.
type AssistantHandler struct {
	Assistant ai.Assistant
}

func NewAssistantHandler(assistant ai.Assistant) *AssistantHandler {
	return &AssistantHandler{Assistant: assistant}
}

type chatRequest struct {
	Messages  []ai.AssistantMessage `json:"messages"`
	SessionID string                `json:"session_id"`
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		utils.Error(w, http.StatusBadRequest, "At least one message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.Assistant.Chat(r.Context(), req.Messages, req.SessionID)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "Assistant is unavailable")
		return
	}
	utils.JSON(w, http.StatusOK, reply)
}
