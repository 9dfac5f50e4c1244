package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errPreviewPDFOnly = errs.NewBadRequestErrorWithField("preview is only available for PDF resumes", "file_type", "")

type resumeHandler struct {
	responder      Responder
	logger         zerolog.Logger
	resumeRepo     *database.ResumeRepo
	experienceRepo *database.ExperienceRepo
	educationRepo  *database.EducationRepo
	projectRepo    *database.ProjectRepo
	technologyRepo *database.TechnologyRepo
	store          storage.Storage
	serializer     serializer
	validator      *validation.Validator
}

func newResumeHandler(db database.Database, store storage.Storage, ser serializer, v *validation.Validator) resumeHandler {
	logger := log.With().Str("handlerName", "resumeHandler").Logger()

	return resumeHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		resumeRepo:     db.ResumeRepo(),
		experienceRepo: db.ExperienceRepo(),
		educationRepo:  db.EducationRepo(),
		projectRepo:    db.ProjectRepo(),
		technologyRepo: db.TechnologyRepo(),
		store:          store,
		serializer:     ser,
		validator:      v,
	}
}

func resumeFilter(r *http.Request) database.ResumeFilter {
	q := r.URL.Query()
	return database.ResumeFilter{
		ResumeType: q.Get("resume_type"),
		Language:   q.Get("language"),
		Search:     q.Get("search"),
	}
}

// getCV returns the resume the about page links to
// @Summary Current CV
// @Description The public primary resume, else the most recently updated public one. null when there is none.
// @Tags Public
// @Produce json
// @Success 200 {object} resumeResponse
// @Router /api/v1/public/about/cv [get]
func (h resumeHandler) getCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, err := h.resumeRepo.FindForCV(r.Context())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteJSON(w, nil)
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.resume(*resume))
	}
}

// listPublicResumes
// @Summary List public resumes
// @Tags Public
// @Produce json
// @Param resume_type query string false "Resume type"
// @Param language query string false "Language code"
// @Success 200 {array} resumeResponse
// @Router /api/v1/public/resumes [get]
func (h resumeHandler) listPublicResumes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := resumeFilter(r)
		public := true
		filter.Public = &public

		resumes, err := h.resumeRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resumes", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.resumes(resumes))
	}
}

// getPrimaryResume
// @Summary Primary resume
// @Tags Public
// @Produce json
// @Success 200 {object} resumeResponse
// @Failure 404 {object} ErrorResponse "No public primary resume"
// @Router /api/v1/public/resumes/primary [get]
func (h resumeHandler) getPrimaryResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, err := h.resumeRepo.FindPrimaryPublic(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "primary resume", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.resume(*resume))
	}
}

// getPublicResume
// @Summary Get public resume
// @Tags Public
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} resumeResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/resumes/{resumeID} [get]
func (h resumeHandler) getPublicResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := h.publicResume(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, h.serializer.resume(*resume))
	}
}

func (h resumeHandler) publicResume(w http.ResponseWriter, r *http.Request) (*models.Resume, bool) {
	id, err := uuidParam(r, "resumeID")
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}
	resume, err := h.resumeRepo.FindPublicByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
		return nil, false
	}
	return resume, true
}

// downloadResume streams the stored file as an attachment
// @Summary Download resume
// @Tags Public
// @Produce octet-stream
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/resumes/{resumeID}/download [get]
func (h resumeHandler) downloadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := h.publicResume(w, r)
		if !ok {
			return
		}
		h.stream(w, r, *resume, "attachment", h.resumeRepo.IncrementDownloadCount)
	}
}

// previewResume streams a PDF resume inline
// @Summary Preview resume
// @Tags Public
// @Produce application/pdf
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Not a PDF"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/resumes/{resumeID}/preview [get]
func (h resumeHandler) previewResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := h.publicResume(w, r)
		if !ok {
			return
		}
		if resume.FileType != models.FilePDF {
			h.responder.WriteError(w, errPreviewPDFOnly)
			return
		}
		h.stream(w, r, *resume, "inline", func(ctx context.Context, id uuid.UUID) error {
			_, err := h.resumeRepo.IncrementViewCount(ctx, id)
			return err
		})
	}
}

// stream opens the stored file before counting, so a missing file is reported without bumping the counter.
func (h resumeHandler) stream(w http.ResponseWriter, r *http.Request, resume models.Resume, disposition string, count func(context.Context, uuid.UUID) error) {
	file, err := h.store.Open(r.Context(), resume.File)
	if err != nil {
		h.responder.WriteError(w, wrapStorageError("open", resume.File, err))
		return
	}
	defer file.Close()

	if err := count(r.Context(), resume.ID); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update", "resume", err))
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(resume.File))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": resume.FileName()}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		h.logger.Warn().Err(err).Str("resumeID", resume.ID.String()).Msg("resume stream interrupted")
	}
}

// recordView counts a view from the frontend viewer
// @Summary Record resume view
// @Tags Public
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} map[string]int
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/resumes/{resumeID}/view [post]
func (h resumeHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, ok := h.publicResume(w, r)
		if !ok {
			return
		}
		views, err := h.resumeRepo.IncrementViewCount(r.Context(), resume.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "resume", err))
			return
		}
		h.responder.WriteJSON(w, map[string]int{"view_count": views})
	}
}

type resumePayload struct {
	Title         string         `json:"title" validate:"required,max=200"`
	File          string         `json:"file" validate:"required,max=255"`
	FileType      string         `json:"file_type" validate:"required,oneof=pdf docx txt html"`
	ResumeType    string         `json:"resume_type" validate:"required,oneof=current technical creative academic concise detailed cover_letter"`
	Language      string         `json:"language" validate:"required,max=10"`
	Version       string         `json:"version" validate:"required,max=20"`
	IsPrimary     bool           `json:"is_primary"`
	IsPublic      bool           `json:"is_public"`
	Description   string         `json:"description"`
	Metadata      map[string]any `json:"metadata"`
	ExperienceIDs []uuid.UUID    `json:"experience_ids"`
	EducationIDs  []uuid.UUID    `json:"education_ids"`
	ProjectIDs    []uuid.UUID    `json:"project_ids"`
	TechnologyIDs []uuid.UUID    `json:"technology_ids"`
}

func newResumePayload() resumePayload {
	return resumePayload{
		FileType:   string(models.FilePDF),
		ResumeType: string(models.ResumeCurrent),
		Language:   "en",
		Version:    "1.0",
		IsPublic:   true,
	}
}

func resumePayloadFrom(r models.Resume) resumePayload {
	return resumePayload{
		Title:       r.Title,
		File:        r.File,
		FileType:    string(r.FileType),
		ResumeType:  string(r.ResumeType),
		Language:    r.Language,
		Version:     r.Version,
		IsPrimary:   r.IsPrimary,
		IsPublic:    r.IsPublic,
		Description: r.Description,
		Metadata:    jsonObject(r.Metadata),
	}
}

func (p resumePayload) apply(r *models.Resume) {
	r.Title = p.Title
	r.File = p.File
	r.FileType = models.FileType(p.FileType)
	r.ResumeType = models.ResumeType(p.ResumeType)
	r.Language = p.Language
	r.Version = p.Version
	r.IsPrimary = p.IsPrimary
	r.IsPublic = p.IsPublic
	r.Description = p.Description
	r.Metadata = datatypes.JSONMap(jsonObject(p.Metadata))
}

// listResumes
// @Summary List resumes (admin)
// @Tags Admin Resumes
// @Security BearerAuth
// @Produce json
// @Param is_public query bool false "Visibility"
// @Success 200 {object} database.Page[models.Resume]
// @Router /api/v1/admin/resumes [get]
func (h resumeHandler) listResumes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := resumeFilter(r)
		public, err := queryBool(r.URL.Query(), "is_public")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		filter.Public = public

		page, err := h.resumeRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resumes", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getResume
// @Summary Get resume (admin)
// @Tags Admin Resumes
// @Security BearerAuth
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/resumes/{resumeID} [get]
func (h resumeHandler) getResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "resumeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		resume, err := h.resumeRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		h.responder.WriteJSON(w, resume)
	}
}

// createResume
// @Summary Create resume
// @Description file is a path returned by the media upload endpoint. Marking it primary demotes every other resume.
// @Tags Admin Resumes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param resume body resumePayload true "Resume"
// @Success 201 {object} models.Resume
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/resumes [post]
func (h resumeHandler) createResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resume models.Resume
		h.saveResume(w, r, &resume, newResumePayload(), true)
	}
}

// updateResume
// @Summary Update resume
// @Tags Admin Resumes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Param resume body resumePayload true "Resume"
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/resumes/{resumeID} [put]
func (h resumeHandler) updateResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "resumeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		resume, err := h.resumeRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		h.saveResume(w, r, resume, resumePayloadFrom(*resume), false)
	}
}

func (h resumeHandler) saveResume(w http.ResponseWriter, r *http.Request, resume *models.Resume, payload resumePayload, isNew bool) {
	ctx := r.Context()
	if err := decodeJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	file, err := storage.CleanPath(payload.File)
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("file", "invalid file path"))
		return
	}
	payload.File = file
	size, err := h.store.Size(ctx, file)
	if errors.Is(err, storage.ErrNotFound) {
		h.responder.WriteError(w, errs.NewInvalidFieldError("file", "file does not exist in storage"))
		return
	}
	if err != nil {
		h.responder.WriteError(w, wrapStorageError("stat", file, err))
		return
	}

	links, err := h.resumeLinks(r, payload)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	payload.apply(resume)
	resume.FileSize = &size
	resume.Experiences, resume.Education, resume.Projects, resume.Technologies = nil, nil, nil, nil
	if err := h.resumeRepo.Save(ctx, resume, isNew, links); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "resume", err))
		return
	}

	saved, err := h.resumeRepo.FindByID(ctx, resume.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	h.responder.WriteStatusJSON(w, status, saved)
}

// resumeLinks resolves the id lists present in the payload. Absent lists stay nil.
func (h resumeHandler) resumeLinks(r *http.Request, p resumePayload) (database.ResumeLinks, error) {
	ctx := r.Context()
	var (
		links database.ResumeLinks
		err   error
	)
	if p.ExperienceIDs != nil {
		if links.Experiences, err = h.experienceRepo.FindByIDs(ctx, p.ExperienceIDs); err != nil {
			return links, wrapReferenceError("experience_ids", "experience", err)
		}
	}
	if p.EducationIDs != nil {
		if links.Education, err = h.educationRepo.FindByIDs(ctx, p.EducationIDs); err != nil {
			return links, wrapReferenceError("education_ids", "education", err)
		}
	}
	if p.ProjectIDs != nil {
		if links.Projects, err = h.projectRepo.FindByIDs(ctx, p.ProjectIDs); err != nil {
			return links, wrapReferenceError("project_ids", "project", err)
		}
	}
	if p.TechnologyIDs != nil {
		if links.Technologies, err = h.technologyRepo.FindByIDs(ctx, p.TechnologyIDs); err != nil {
			return links, wrapReferenceError("technology_ids", "technology", err)
		}
	}
	return links, nil
}

// deleteResume removes the resume and its stored file
// @Summary Delete resume
// @Tags Admin Resumes
// @Security BearerAuth
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/resumes/{resumeID} [delete]
func (h resumeHandler) deleteResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "resumeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		resume, err := h.resumeRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "resume", err))
			return
		}

		if err := h.store.Delete(r.Context(), resume.File); err != nil && !errors.Is(err, storage.ErrNotFound) {
			h.logger.Warn().Err(err).Str("file", resume.File).Msg("resume deleted but its file could not be removed")
		}
		h.responder.WriteJSON(w, deletedResponse("resume"))
	}
}

// setPrimaryResume
// @Summary Mark resume as primary
// @Description Every other resume loses the primary flag in the same transaction.
// @Tags Admin Resumes
// @Security BearerAuth
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/resumes/{resumeID}/primary [post]
func (h resumeHandler) setPrimaryResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "resumeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.resumeRepo.SetPrimary(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "resume", err))
			return
		}

		resume, err := h.resumeRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		h.logger.Info().Str("resumeID", id.String()).Msg("primary resume changed")
		h.responder.WriteJSON(w, resume)
	}
}
