package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/services"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

type contactHandler struct {
	responder     Responder
	logger        zerolog.Logger
	contact       *services.ContactService
	subscriptions *services.SubscriptionService
}

func newContactHandler(contact *services.ContactService, subscriptions *services.SubscriptionService, production bool) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:     NewResponder(logger, production),
		logger:        logger,
		contact:       contact,
		subscriptions: subscriptions,
	}
}

type contactResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Contact models.ContactMessage `json:"contact"`
}

type subscriptionResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Subscription models.Subscription `json:"subscription"`
}

type contactCollection struct {
	Messages []models.ContactMessage `json:"messages"`
}

func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.ContactInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.contact.Submit(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, contactResponse{
			Success: true,
			Message: "Thank you for contacting us. We will get back to you soon.",
			Contact: msg,
		})
	}
}

func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.contact.Messages(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, contactCollection{Messages: messages})
	}
}

// subscribe answers 201 for a new row and 200 for an existing or reactivated one.
func (h contactHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.SubscriptionInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		sub, created, err := h.subscriptions.Subscribe(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status, message := http.StatusOK, "Your subscription is active."
		if created {
			status, message = http.StatusCreated, "Successfully subscribed."
		}
		h.responder.WriteJSONStatus(w, status, subscriptionResponse{Success: true, Message: message, Subscription: sub})
	}
}

func (h contactHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.UnsubscribeInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		sub, err := h.subscriptions.Unsubscribe(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, subscriptionResponse{Success: true, Message: "Successfully unsubscribed.", Subscription: sub})
	}
}
