package transport

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

type newsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	subscriber, err := h.newsletter.Subscribe(req.Email, req.Name)
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Successfully subscribed to the newsletter",
			"email":   subscriber.Email,
		})
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondInternal(w, err, "Failed to subscribe")
	}
}

func (h *Handler) unsubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.newsletter.Unsubscribe(req.Email)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Successfully unsubscribed",
		})
	case errors.Is(err, model.ErrSubscriberNotFound):
		respondError(w, http.StatusNotFound, "Subscriber not found")
	default:
		respondInternal(w, err, "Failed to unsubscribe")
	}
}
