package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type educationHandler struct {
	responder     Responder
	logger        zerolog.Logger
	educationRepo *database.EducationRepo
	serializer    serializer
	validator     *validation.Validator
}

func newEducationHandler(education *database.EducationRepo, ser serializer, v *validation.Validator) educationHandler {
	logger := log.With().Str("handlerName", "educationHandler").Logger()

	return educationHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		educationRepo: education,
		serializer:    ser,
		validator:     v,
	}
}

func educationFilter(r *http.Request) (database.EducationFilter, error) {
	q := r.URL.Query()
	current, err := queryBool(q, "is_current")
	if err != nil {
		return database.EducationFilter{}, err
	}
	featured, err := queryBool(q, "is_featured")
	if err != nil {
		return database.EducationFilter{}, err
	}
	return database.EducationFilter{
		EducationType: q.Get("education_type"),
		IsCurrent:     current,
		Featured:      featured,
		Search:        q.Get("search"),
	}, nil
}

// listPublicEducation
// @Summary List education
// @Tags Public
// @Produce json
// @Param education_type query string false "Education type"
// @Param is_current query bool false "Ongoing only"
// @Param is_featured query bool false "Featured only"
// @Param search query string false "Institution, degree or field of study"
// @Success 200 {object} database.Page[educationResponse]
// @Router /api/v1/public/education [get]
func (h educationHandler) listPublicEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := educationFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.educationRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.responder.WriteJSON(w, database.MapPage(page, h.serializer.education))
	}
}

// getPublicEducation
// @Summary Get education entry
// @Tags Public
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Success 200 {object} educationResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/education/{educationID} [get]
func (h educationHandler) getPublicEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		education, err := h.educationRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.education(*education))
	}
}

// listAboutEducation
// @Summary Featured education for the about page
// @Tags Public
// @Produce json
// @Success 200 {array} educationResponse
// @Router /api/v1/public/about/education [get]
func (h educationHandler) listAboutEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		education, err := h.educationRepo.FindFeatured(r.Context(), aboutTimelineLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.educationList(education))
	}
}

type educationPayload struct {
	Institution        string   `json:"institution" validate:"required,max=200"`
	InstitutionLogo    string   `json:"institution_logo" validate:"max=255"`
	InstitutionWebsite string   `json:"institution_website" validate:"omitempty,url,max=500"`
	Location           string   `json:"location" validate:"max=200"`
	Degree             string   `json:"degree" validate:"required,max=200"`
	FieldOfStudy       string   `json:"field_of_study" validate:"max=200"`
	EducationType      string   `json:"education_type" validate:"required,oneof=bachelors masters phd associate diploma certification course bootcamp"`
	StartDate          *Date    `json:"start_date"`
	EndDate            *Date    `json:"end_date"`
	IsCurrent          bool     `json:"is_current"`
	GradeType          string   `json:"grade_type" validate:"required,oneof=gpa percentage cgpa grade none"`
	GradeValue         *float64 `json:"grade_value" validate:"omitempty,gte=0"`
	GradeScale         *float64 `json:"grade_scale" validate:"omitempty,gt=0"`
	GradeDisplay       string   `json:"grade_display" validate:"max=50"`
	Description        string   `json:"description"`
	Achievements       []string `json:"achievements"`
	Courses            []string `json:"courses"`
	SkillsLearned      []string `json:"skills_learned"`
	ThesisTitle        string   `json:"thesis_title" validate:"max=300"`
	ThesisDescription  string   `json:"thesis_description"`
	Transcript         string   `json:"transcript" validate:"max=255"`
	IsFeatured         bool     `json:"is_featured"`
	Order              int      `json:"order" validate:"gte=0"`
}

func educationPayloadFrom(e models.Education) educationPayload {
	start := newDate(e.StartDate)
	return educationPayload{
		Institution:        e.Institution,
		InstitutionLogo:    e.InstitutionLogo,
		InstitutionWebsite: e.InstitutionWebsite,
		Location:           e.Location,
		Degree:             e.Degree,
		FieldOfStudy:       e.FieldOfStudy,
		EducationType:      string(e.EducationType),
		StartDate:          &start,
		EndDate:            datePtr(e.EndDate),
		IsCurrent:          e.IsCurrent,
		GradeType:          string(e.GradeType),
		GradeValue:         e.GradeValue,
		GradeScale:         e.GradeScale,
		GradeDisplay:       e.GradeDisplay,
		Description:        e.Description,
		Achievements:       e.Achievements,
		Courses:            e.Courses,
		SkillsLearned:      e.SkillsLearned,
		ThesisTitle:        e.ThesisTitle,
		ThesisDescription:  e.ThesisDescription,
		Transcript:         e.Transcript,
		IsFeatured:         e.IsFeatured,
		Order:              e.Order,
	}
}

func (p educationPayload) apply(e *models.Education) {
	e.Institution = p.Institution
	e.InstitutionLogo = p.InstitutionLogo
	e.InstitutionWebsite = p.InstitutionWebsite
	e.Location = p.Location
	e.Degree = p.Degree
	e.FieldOfStudy = p.FieldOfStudy
	e.EducationType = models.EducationType(p.EducationType)
	e.StartDate = p.StartDate.Time
	e.EndDate = p.EndDate.timePtr()
	e.IsCurrent = p.IsCurrent
	e.GradeType = models.GradeType(p.GradeType)
	e.GradeValue = p.GradeValue
	e.GradeScale = p.GradeScale
	e.GradeDisplay = p.GradeDisplay
	e.Description = p.Description
	e.Achievements = datatypes.JSONSlice[string](nonNil(p.Achievements))
	e.Courses = datatypes.JSONSlice[string](nonNil(p.Courses))
	e.SkillsLearned = datatypes.JSONSlice[string](nonNil(p.SkillsLearned))
	e.ThesisTitle = p.ThesisTitle
	e.ThesisDescription = p.ThesisDescription
	e.Transcript = p.Transcript
	e.IsFeatured = p.IsFeatured
	e.Order = p.Order
}

// listEducation
// @Summary List education (admin)
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Success 200 {object} database.Page[models.Education]
// @Router /api/v1/admin/education [get]
func (h educationHandler) listEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := educationFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.educationRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.responder.WriteJSON(w, database.MapPage(page, adminEducation))
	}
}

// getEducation
// @Summary Get education entry (admin)
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Success 200 {object} models.Education
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/education/{educationID} [get]
func (h educationHandler) getEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		education, err := h.educationRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.responder.WriteJSON(w, adminEducation(*education))
	}
}

// createEducation
// @Summary Create education entry
// @Tags Admin Timeline
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param education body educationPayload true "Education"
// @Success 201 {object} models.Education
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/education [post]
func (h educationHandler) createEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var education models.Education
		payload := educationPayload{
			EducationType: string(models.EducationBachelors),
			GradeType:     string(models.GradeNone),
		}
		h.saveEducation(w, r, &education, payload, true)
	}
}

// updateEducation
// @Summary Update education entry
// @Tags Admin Timeline
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Param education body educationPayload true "Education"
// @Success 200 {object} models.Education
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/education/{educationID} [put]
func (h educationHandler) updateEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		education, err := h.educationRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		h.saveEducation(w, r, education, educationPayloadFrom(*education), false)
	}
}

func (h educationHandler) saveEducation(w http.ResponseWriter, r *http.Request, education *models.Education, payload educationPayload, isNew bool) {
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

	payload.apply(education)
	var err error
	if isNew {
		err = h.educationRepo.Add(r.Context(), education)
	} else {
		err = h.educationRepo.Update(r.Context(), education)
	}
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "education", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	h.responder.WriteStatusJSON(w, status, adminEducation(*education))
}

// deleteEducation
// @Summary Delete education entry
// @Tags Admin Timeline
// @Security BearerAuth
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/education/{educationID} [delete]
func (h educationHandler) deleteEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.educationRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "education", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("education"))
	}
}
