package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

type analyticsHandler struct {
	responder     Responder
	analyticsRepo *database.VisitorAnalyticsRepo
	validator     *validation.Validator
}

func newAnalyticsHandler(visits *database.VisitorAnalyticsRepo, v *validation.Validator) analyticsHandler {
	logger := log.With().Str("handlerName", "analyticsHandler").Logger()

	return analyticsHandler{
		responder:     NewResponder(logger),
		analyticsRepo: visits,
		validator:     v,
	}
}

type visitPayload struct {
	SessionID   string `json:"session_id" validate:"max=100"`
	Referrer    string `json:"referrer" validate:"max=500"`
	PageVisited string `json:"page_visited" validate:"required,max=500"`
	TimeOnPage  int    `json:"time_on_page" validate:"min=0"`
	IsBounce    *bool  `json:"is_bounce"`
}

type visitResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
}

// recordVisit
// @Summary Record page visit
// @Description A session id is generated when the client does not send one; reuse it for later visits.
// @Tags Public
// @Accept json
// @Produce json
// @Param visit body visitPayload true "Visit"
// @Success 201 {object} visitResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/public/analytics/visits [post]
func (h analyticsHandler) recordVisit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload visitPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		visit := models.VisitorAnalytics{
			SessionID:   payload.SessionID,
			IPAddress:   clientIP(r),
			UserAgent:   r.UserAgent(),
			Referrer:    payload.Referrer,
			PageVisited: payload.PageVisited,
			TimeOnPage:  payload.TimeOnPage,
			IsBounce:    true,
		}
		if visit.SessionID == "" {
			visit.SessionID = ksuid.New().String()
		}
		if visit.Referrer == "" {
			visit.Referrer = r.Referer()
		}
		if payload.IsBounce != nil {
			visit.IsBounce = *payload.IsBounce
		}

		if err := h.analyticsRepo.Add(r.Context(), &visit); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "visit", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, visitResponse{
			ID:        visit.ID.String(),
			SessionID: visit.SessionID,
		})
	}
}

// listVisits
// @Summary List page visits
// @Tags Admin Analytics
// @Security BearerAuth
// @Produce json
// @Param session_id query string false "Session"
// @Param page_visited query string false "Page path contains"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} database.Page[models.VisitorAnalytics]
// @Router /api/v1/admin/analytics/visits [get]
func (h analyticsHandler) listVisits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := database.VisitorAnalyticsFilter{SessionID: q.Get("session_id"), Page: q.Get("page_visited")}
		page, err := h.analyticsRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "visits", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}
