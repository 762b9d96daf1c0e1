// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wishwell/wishwell-backend/internal/notify"
	"github.com/wishwell/wishwell-backend/internal/service"
)

// CampaignHandler holds the dependencies for campaign-related HTTP handlers.
type CampaignHandler struct {
	Service    *service.CampaignService
	Dispatcher *notify.Dispatcher
}

func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Service.ListCampaigns()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadBody(w)
		return
	}

	campaign, err := h.Service.CreateCampaign(input)
	if err != nil {
		respondError(w, err)
		return
	}

	// Best-effort; the campaign is created whether or not any email goes out.
	h.Dispatcher.Notify(campaign, campaign.InvitedEmails)

	respondJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Service.GetCampaign(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) PatchCampaign(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadBody(w)
		return
	}

	campaign, err := h.Service.UpdateCampaign(chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCampaign(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CampaignHandler) InviteEmails(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Emails []string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadBody(w)
		return
	}

	campaign, newEmails, err := h.Service.AddInvitees(chi.URLParam(r, "id"), body.Emails)
	if err != nil {
		respondError(w, err)
		return
	}

	// Only addresses that were not already invited get an email.
	if len(newEmails) > 0 {
		h.Dispatcher.Notify(campaign, newEmails)
	}

	respondJSON(w, http.StatusOK, campaign)
}

// VerifyInvitee backs the contributor email-check screen. Read-only: it
// never mutates campaign state.
func (h *CampaignHandler) VerifyInvitee(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "email query parameter required"})
		return
	}

	invited, err := h.Service.VerifyInvitee(chi.URLParam(r, "id"), email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"invited": invited})
}

// RefreshStatus runs completion detection for one campaign.
func (h *CampaignHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Service.RefreshStatus(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}
