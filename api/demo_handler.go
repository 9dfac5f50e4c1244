package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

type demoHandler struct {
	responder   Responder
	logger      zerolog.Logger
	demoRepo    *database.DemoRepo
	projectRepo *database.ProjectRepo
	serializer  serializer
	validator   *validation.Validator
	now         func() time.Time
}

func newDemoHandler(demos *database.DemoRepo, projects *database.ProjectRepo, ser serializer, v *validation.Validator) demoHandler {
	logger := log.With().Str("handlerName", "demoHandler").Logger()

	return demoHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		demoRepo:    demos,
		projectRepo: projects,
		serializer:  ser,
		validator:   v,
		now:         time.Now,
	}
}

type demoPayload struct {
	ProjectID     uuid.UUID `json:"project_id" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=online offline maintenance"`
	InstanceURL   string    `json:"instance_url" validate:"omitempty,url,max=500"`
	AdminURL      string    `json:"admin_url" validate:"omitempty,url,max=500"`
	AdminUsername string    `json:"admin_username" validate:"max=100"`
	AdminPassword *string   `json:"admin_password" validate:"omitempty,max=100"`
	ContainerID   string    `json:"container_id" validate:"max=100"`
	CheckInterval int       `json:"check_interval" validate:"gte=30"`
	IsPublic      bool      `json:"is_public"`
	MaxUsers      int       `json:"max_users" validate:"gte=1"`
}

func demoPayloadFrom(d models.DemoInstance) demoPayload {
	return demoPayload{
		ProjectID:     d.ProjectID,
		Status:        string(d.Status),
		InstanceURL:   d.InstanceURL,
		AdminURL:      d.AdminURL,
		AdminUsername: d.AdminUsername,
		ContainerID:   d.ContainerID,
		CheckInterval: d.CheckInterval,
		IsPublic:      d.IsPublic,
		MaxUsers:      d.MaxUsers,
	}
}

// apply copies the payload onto d. The stored admin password is kept unless a new one is sent.
func (p demoPayload) apply(d *models.DemoInstance) {
	d.ProjectID = p.ProjectID
	d.Status = models.DemoStatus(p.Status)
	d.InstanceURL = p.InstanceURL
	d.AdminURL = p.AdminURL
	d.AdminUsername = p.AdminUsername
	if p.AdminPassword != nil {
		d.AdminPassword = *p.AdminPassword
	}
	d.ContainerID = p.ContainerID
	d.CheckInterval = p.CheckInterval
	d.IsPublic = p.IsPublic
	d.MaxUsers = p.MaxUsers
}

// listPublicDemos lists public demos that are online
// @Summary List live demos
// @Tags Public
// @Produce json
// @Success 200 {array} publicDemoResponse
// @Router /api/v1/public/demos [get]
func (h demoHandler) listPublicDemos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		public := true
		demos, err := h.demoRepo.FindAll(r.Context(), database.DemoFilter{
			Status: string(models.DemoOnline),
			Public: &public,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demos", err))
			return
		}
		h.responder.WriteJSON(w, mapSlice(demos, h.serializer.publicDemo))
	}
}

type demoSessionResponse struct {
	SessionID string    `json:"session_id"`
	DemoID    uuid.UUID `json:"demo_id"`
	StartTime time.Time `json:"start_time"`
}

// startSession opens a visitor session on a live demo
// @Summary Start demo session
// @Tags Public
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Success 201 {object} demoSessionResponse
// @Failure 404 {object} ErrorResponse "Demo unknown, private or offline"
// @Router /api/v1/public/demos/{demoID}/sessions [post]
func (h demoHandler) startSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.demoRepo.FindPublicOnline(r.Context(), demoID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo", err))
			return
		}

		stat := models.DemoStat{
			DemoID:    demoID,
			SessionID: ksuid.New().String(),
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
			StartTime: h.now().UTC(),
		}
		if err := h.demoRepo.StartSession(r.Context(), &stat); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "demo session", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, demoSessionResponse{
			SessionID: stat.SessionID,
			DemoID:    demoID,
			StartTime: stat.StartTime,
		})
	}
}

type endSessionPayload struct {
	ActionsCount int `json:"actions_count" validate:"gte=0"`
}

// endSession closes a demo session and records its duration
// @Summary End demo session
// @Tags Public
// @Accept json
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Param sessionID path string true "Session ID"
// @Param body body endSessionPayload false "Actions performed"
// @Success 200 {object} models.DemoStat
// @Failure 404 {object} ErrorResponse "No open session"
// @Router /api/v1/public/demos/{demoID}/sessions/{sessionID}/end [post]
func (h demoHandler) endSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload endSessionPayload
		if err := decodeOptionalJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		stat, err := h.demoRepo.EndSession(r.Context(), demoID, chi.URLParam(r, "sessionID"), h.now().UTC(), payload.ActionsCount)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo session", err))
			return
		}
		h.responder.WriteJSON(w, stat)
	}
}

// listDemos
// @Summary List demos (admin)
// @Tags Admin Demos
// @Security BearerAuth
// @Produce json
// @Param status query string false "online, offline or maintenance"
// @Param is_public query bool false "Visibility"
// @Success 200 {object} database.Page[models.DemoInstance]
// @Router /api/v1/admin/demos [get]
func (h demoHandler) listDemos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		public, err := queryBool(r.URL.Query(), "is_public")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.DemoFilter{Status: r.URL.Query().Get("status"), Public: public}
		page, err := h.demoRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demos", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getDemo
// @Summary Get demo
// @Tags Admin Demos
// @Security BearerAuth
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Success 200 {object} models.DemoInstance
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/demos/{demoID} [get]
func (h demoHandler) getDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		demo, err := h.demoRepo.FindByID(r.Context(), demoID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo", err))
			return
		}
		h.responder.WriteJSON(w, demo)
	}
}

// createDemo
// @Summary Create demo
// @Description A project has at most one demo instance.
// @Tags Admin Demos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param demo body demoPayload true "Demo"
// @Success 201 {object} models.DemoInstance
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Project already has a demo"
// @Router /api/v1/admin/demos [post]
func (h demoHandler) createDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := demoPayload{
			Status:        string(models.DemoOffline),
			CheckInterval: models.DefaultCheckInterval,
			IsPublic:      true,
			MaxUsers:      10,
		}
		var demo models.DemoInstance
		h.saveDemo(w, r, &demo, payload, true)
	}
}

// updateDemo
// @Summary Update demo
// @Description admin_password is only replaced when present in the body.
// @Tags Admin Demos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Param demo body demoPayload true "Demo"
// @Success 200 {object} models.DemoInstance
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/demos/{demoID} [put]
func (h demoHandler) updateDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		demo, err := h.demoRepo.FindByID(r.Context(), demoID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo", err))
			return
		}
		demo.Project = nil
		h.saveDemo(w, r, demo, demoPayloadFrom(*demo), false)
	}
}

func (h demoHandler) saveDemo(w http.ResponseWriter, r *http.Request, demo *models.DemoInstance, payload demoPayload, isNew bool) {
	ctx := r.Context()
	if err := decodeJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	if _, err := h.projectRepo.FindByIDs(ctx, []uuid.UUID{payload.ProjectID}); err != nil {
		h.responder.WriteError(w, wrapReferenceError("project_id", "project", err))
		return
	}

	payload.apply(demo)
	var err error
	if isNew {
		err = h.demoRepo.Add(ctx, demo)
	} else {
		err = h.demoRepo.Update(ctx, demo)
	}
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "demo", err))
		return
	}

	saved, err := h.demoRepo.FindByID(ctx, demo.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "demo", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	h.responder.WriteStatusJSON(w, status, saved)
}

// deleteDemo
// @Summary Delete demo
// @Tags Admin Demos
// @Security BearerAuth
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/demos/{demoID} [delete]
func (h demoHandler) deleteDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.demoRepo.Delete(r.Context(), demoID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "demo", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("demo"))
	}
}

// listStats pages through the visitor sessions of a demo
// @Summary List demo sessions
// @Tags Admin Demos
// @Security BearerAuth
// @Produce json
// @Param demoID path string true "Demo ID" format(uuid)
// @Success 200 {object} database.Page[models.DemoStat]
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/demos/{demoID}/stats [get]
func (h demoHandler) listStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoID, err := uuidParam(r, "demoID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.demoRepo.FindByID(r.Context(), demoID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo", err))
			return
		}

		page, err := h.demoRepo.FindStatsPage(r.Context(), demoID, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "demo stats", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}
