package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// aboutTimelineLimit caps the featured entries on the about page.
const aboutTimelineLimit = 5

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
	technologyRepo *database.TechnologyRepo
	projectRepo    *database.ProjectRepo
	serializer     serializer
	validator      *validation.Validator
}

func newExperienceHandler(db database.Database, ser serializer, v *validation.Validator) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: db.ExperienceRepo(),
		technologyRepo: db.TechnologyRepo(),
		projectRepo:    db.ProjectRepo(),
		serializer:     ser,
		validator:      v,
	}
}

func experienceFilter(r *http.Request) (database.ExperienceFilter, error) {
	q := r.URL.Query()
	current, err := queryBool(q, "is_current")
	if err != nil {
		return database.ExperienceFilter{}, err
	}
	featured, err := queryBool(q, "is_featured")
	if err != nil {
		return database.ExperienceFilter{}, err
	}
	return database.ExperienceFilter{
		ExperienceType: q.Get("experience_type"),
		IsCurrent:      current,
		Featured:       featured,
		Search:         q.Get("search"),
	}, nil
}

// listPublicExperiences
// @Summary List experiences
// @Tags Public
// @Produce json
// @Param experience_type query string false "full_time, part_time, contract, freelance, internship or volunteer"
// @Param is_current query bool false "Current positions only"
// @Param is_featured query bool false "Featured only"
// @Param search query string false "Position, company or description"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} database.Page[experienceResponse]
// @Router /api/v1/public/experiences [get]
func (h experienceHandler) listPublicExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := experienceFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.experienceRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}
		h.responder.WriteJSON(w, database.MapPage(page, h.serializer.experience))
	}
}

// getPublicExperience
// @Summary Get experience
// @Tags Public
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} experienceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/experiences/{experienceID} [get]
func (h experienceHandler) getPublicExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience, err := h.experienceRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.experience(*experience))
	}
}

// listAboutExperiences
// @Summary Featured experiences for the about page
// @Tags Public
// @Produce json
// @Success 200 {array} experienceResponse
// @Router /api/v1/public/about/experience [get]
func (h experienceHandler) listAboutExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experienceRepo.FindFeatured(r.Context(), aboutTimelineLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.experiences(experiences))
	}
}

type experiencePayload struct {
	Position         string      `json:"position" validate:"required,max=200"`
	Company          string      `json:"company" validate:"required,max=200"`
	CompanyLogo      string      `json:"company_logo" validate:"max=255"`
	CompanyWebsite   string      `json:"company_website" validate:"omitempty,url,max=500"`
	Location         string      `json:"location" validate:"max=200"`
	ExperienceType   string      `json:"experience_type" validate:"required,oneof=full_time part_time contract freelance internship volunteer"`
	StartDate        *Date       `json:"start_date"`
	EndDate          *Date       `json:"end_date"`
	IsCurrent        bool        `json:"is_current"`
	Description      string      `json:"description"`
	Responsibilities []string    `json:"responsibilities"`
	SkillsGained     []string    `json:"skills_gained"`
	TechnologyIDs    []uuid.UUID `json:"technology_ids"`
	ProjectIDs       []uuid.UUID `json:"project_ids"`
	IsFeatured       bool        `json:"is_featured"`
	Order            int         `json:"order" validate:"gte=0"`
}

func experiencePayloadFrom(e models.Experience) experiencePayload {
	start := newDate(e.StartDate)
	return experiencePayload{
		Position:         e.Position,
		Company:          e.Company,
		CompanyLogo:      e.CompanyLogo,
		CompanyWebsite:   e.CompanyWebsite,
		Location:         e.Location,
		ExperienceType:   string(e.ExperienceType),
		StartDate:        &start,
		EndDate:          datePtr(e.EndDate),
		IsCurrent:        e.IsCurrent,
		Description:      e.Description,
		Responsibilities: e.Responsibilities,
		SkillsGained:     e.SkillsGained,
		IsFeatured:       e.IsFeatured,
		Order:            e.Order,
	}
}

func (p experiencePayload) apply(e *models.Experience) {
	e.Position = p.Position
	e.Company = p.Company
	e.CompanyLogo = p.CompanyLogo
	e.CompanyWebsite = p.CompanyWebsite
	e.Location = p.Location
	e.ExperienceType = models.ExperienceType(p.ExperienceType)
	e.StartDate = p.StartDate.Time
	e.EndDate = p.EndDate.timePtr()
	e.IsCurrent = p.IsCurrent
	e.Description = p.Description
	e.Responsibilities = datatypes.JSONSlice[string](nonNil(p.Responsibilities))
	e.SkillsGained = datatypes.JSONSlice[string](nonNil(p.SkillsGained))
	e.IsFeatured = p.IsFeatured
	e.Order = p.Order
}

var errStartDateRequired = errs.NewMissingRequiredFieldError("start_date")

// listExperiences
// @Summary List experiences (admin)
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Success 200 {object} database.Page[models.Experience]
// @Router /api/v1/admin/experiences [get]
func (h experienceHandler) listExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := experienceFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.experienceRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}
		h.responder.WriteJSON(w, database.MapPage(page, adminExperience))
	}
}

// getExperience
// @Summary Get experience (admin)
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} models.Experience
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/experiences/{experienceID} [get]
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience, err := h.experienceRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		h.responder.WriteJSON(w, adminExperience(*experience))
	}
}

// createExperience
// @Summary Create experience
// @Description end_date is cleared when is_current is set.
// @Tags Admin Timeline
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param experience body experiencePayload true "Experience"
// @Success 201 {object} models.Experience
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/experiences [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var experience models.Experience
		payload := experiencePayload{ExperienceType: string(models.ExperienceFullTime)}
		h.saveExperience(w, r, &experience, payload, true)
	}
}

// updateExperience
// @Summary Update experience
// @Tags Admin Timeline
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Param experience body experiencePayload true "Experience"
// @Success 200 {object} models.Experience
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/experiences/{experienceID} [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience, err := h.experienceRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		h.saveExperience(w, r, experience, experiencePayloadFrom(*experience), false)
	}
}

func (h experienceHandler) saveExperience(w http.ResponseWriter, r *http.Request, experience *models.Experience, payload experiencePayload, isNew bool) {
	ctx := r.Context()
	if err := decodeJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if payload.StartDate == nil || payload.StartDate.IsZero() {
		h.responder.WriteError(w, errStartDateRequired)
		return
	}

	var (
		technologies []models.Technology
		projects     []models.Project
		err          error
	)
	if payload.TechnologyIDs != nil {
		if technologies, err = h.technologyRepo.FindByIDs(ctx, payload.TechnologyIDs); err != nil {
			h.responder.WriteError(w, wrapReferenceError("technology_ids", "technology", err))
			return
		}
	}
	if payload.ProjectIDs != nil {
		if projects, err = h.projectRepo.FindByIDs(ctx, payload.ProjectIDs); err != nil {
			h.responder.WriteError(w, wrapReferenceError("project_ids", "project", err))
			return
		}
	}

	payload.apply(experience)
	if err := h.experienceRepo.Save(ctx, experience, isNew, technologies, projects); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "experience", err))
		return
	}

	saved, err := h.experienceRepo.FindByID(ctx, experience.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	h.responder.WriteStatusJSON(w, status, adminExperience(*saved))
}

// deleteExperience
// @Summary Delete experience
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/experiences/{experienceID} [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.experienceRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "experience", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("experience"))
	}
}
