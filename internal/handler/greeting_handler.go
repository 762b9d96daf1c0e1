// internal/handler/greeting_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wishwell/wishwell-backend/internal/service"
)

type GreetingHandler struct {
	Service *service.GreetingService
}

func (h *GreetingHandler) ListGreetings(w http.ResponseWriter, r *http.Request) {
	greetings, err := h.Service.ListGreetings(r.URL.Query().Get("campaignId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, greetings)
}

func (h *GreetingHandler) CreateGreeting(w http.ResponseWriter, r *http.Request) {
	var input service.CreateGreetingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadBody(w)
		return
	}

	greeting, err := h.Service.CreateGreeting(input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, greeting)
}
