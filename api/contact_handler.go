package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultNotifyTimeout = 15 * time.Second

var errContactFailed = errs.NewBadRequestError("Failed to send message. Please try again.")

type contactHandler struct {
	responder     Responder
	logger        zerolog.Logger
	messageRepo   *database.ContactMessageRepo
	notifier      services.Notifier
	notifyTimeout time.Duration
	validator     *validation.Validator
	now           func() time.Time
}

func newContactHandler(messages *database.ContactMessageRepo, notifier services.Notifier, notifyTimeout time.Duration, v *validation.Validator) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}

	return contactHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		messageRepo:   messages,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		validator:     v,
		now:           time.Now,
	}
}

type contactPayload struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// submitContact stores a contact form submission and alerts the site owner
// @Summary Submit contact form
// @Tags Public
// @Accept json
// @Produce json
// @Param message body contactPayload true "Contact message"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/public/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := models.ContactMessage{
			Name:      payload.Name,
			Email:     payload.Email,
			Subject:   payload.Subject,
			Message:   payload.Message,
			Status:    models.MessageNew,
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		if err := h.messageRepo.Add(r.Context(), &message); err != nil {
			h.logger.Error().Err(err).Msg("failed to store contact message")
			h.responder.WriteError(w, errContactFailed)
			return
		}

		go h.notify(message)

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]string{
			"message": "Message sent successfully!",
		})
	}
}

// notify runs detached from the request so a slow channel never delays the response.
func (h contactHandler) notify(message models.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
	defer cancel()

	if err := h.notifier.Notify(ctx, services.ContactMessageNotification(message)); err != nil {
		h.logger.Warn().Err(err).Str("messageID", message.ID.String()).Msg("contact notification failed")
	}
}

// listMessages
// @Summary List contact messages
// @Tags Admin Messages
// @Security BearerAuth
// @Produce json
// @Param status query string false "new, read, replied or archived"
// @Param is_spam query bool false "Spam flag"
// @Param search query string false "Name, email or subject"
// @Success 200 {object} database.Page[models.ContactMessage]
// @Router /api/v1/admin/contact-messages [get]
func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		spam, err := queryBool(q, "is_spam")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.ContactMessageFilter{Status: q.Get("status"), IsSpam: spam, Search: q.Get("search")}
		page, err := h.messageRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact messages", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getMessage
// @Summary Get contact message
// @Tags Admin Messages
// @Security BearerAuth
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/contact-messages/{messageID} [get]
func (h contactHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact message", err))
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

type messageUpdatePayload struct {
	Status     string `json:"status" validate:"required,oneof=new read replied archived"`
	IsSpam     bool   `json:"is_spam"`
	AdminNotes string `json:"admin_notes"`
}

// updateMessage changes the triage fields of a message
// @Summary Update contact message
// @Description Only status, is_spam and admin_notes are editable. Moving to replied stamps replied_at.
// @Tags Admin Messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Param message body messageUpdatePayload true "Triage fields"
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/contact-messages/{messageID} [put]
func (h contactHandler) updateMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact message", err))
			return
		}

		payload := messageUpdatePayload{
			Status:     string(message.Status),
			IsSpam:     message.IsSpam,
			AdminNotes: message.AdminNotes,
		}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		status := models.MessageStatus(payload.Status)
		if status == models.MessageReplied && message.Status != models.MessageReplied {
			now := h.now().UTC()
			message.RepliedAt = &now
		}
		message.Status = status
		message.IsSpam = payload.IsSpam
		message.AdminNotes = payload.AdminNotes

		if err := h.messageRepo.Update(r.Context(), message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "contact message", err))
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

// deleteMessage
// @Summary Delete contact message
// @Tags Admin Messages
// @Security BearerAuth
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/contact-messages/{messageID} [delete]
func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.messageRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact message", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("contact message"))
	}
}
