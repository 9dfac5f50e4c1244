package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectRepo    *database.ProjectRepo
	imageRepo      *database.ProjectImageRepo
	snippetRepo    *database.CodeSnippetRepo
	categoryRepo   *database.CategoryRepo
	technologyRepo *database.TechnologyRepo
	serializer     serializer
	validator      *validation.Validator
}

func newProjectHandler(db database.Database, ser serializer, v *validation.Validator) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectRepo:    db.ProjectRepo(),
		imageRepo:      db.ProjectImageRepo(),
		snippetRepo:    db.CodeSnippetRepo(),
		categoryRepo:   db.CategoryRepo(),
		technologyRepo: db.TechnologyRepo(),
		serializer:     ser,
		validator:      v,
	}
}

// projectPayload is the create/update body. Updates start from the stored project, so omitted
// fields keep their values.
type projectPayload struct {
	Title             string      `json:"title" validate:"required,max=200"`
	Slug              string      `json:"slug" validate:"omitempty,max=200,slug"`
	ShortDescription  string      `json:"short_description" validate:"required,max=300"`
	LongDescription   string      `json:"long_description"`
	CategoryID        *uuid.UUID  `json:"category_id"`
	TechnologyIDs     []uuid.UUID `json:"technology_ids"`
	Status            string      `json:"status" validate:"required,oneof=completed in_progress planned archived"`
	DemoType          string      `json:"demo_type" validate:"required,oneof=live video screenshot none"`
	DemoURL           string      `json:"demo_url" validate:"omitempty,url,max=500"`
	GithubURL         string      `json:"github_url" validate:"omitempty,url,max=500"`
	DocumentationURL  string      `json:"documentation_url" validate:"omitempty,url,max=500"`
	FeaturedImage     string      `json:"featured_image" validate:"max=255"`
	Tags              []string    `json:"tags"`
	Features          []string    `json:"features"`
	InstallationGuide string      `json:"installation_guide"`
	IsFeatured        bool        `json:"is_featured"`
	IsPublic          bool        `json:"is_public"`
	Order             int         `json:"order" validate:"gte=0"`
	StartDate         *Date       `json:"start_date"`
	CompletionDate    *Date       `json:"completion_date"`
}

func newProjectPayload() projectPayload {
	return projectPayload{
		Status:   string(models.ProjectCompleted),
		DemoType: string(models.DemoNone),
		IsPublic: true,
	}
}

func projectPayloadFrom(p models.Project) projectPayload {
	return projectPayload{
		Title:             p.Title,
		Slug:              p.Slug,
		ShortDescription:  p.ShortDescription,
		LongDescription:   p.LongDescription,
		CategoryID:        p.CategoryID,
		Status:            string(p.Status),
		DemoType:          string(p.DemoType),
		DemoURL:           p.DemoURL,
		GithubURL:         p.GithubURL,
		DocumentationURL:  p.DocumentationURL,
		FeaturedImage:     p.FeaturedImage,
		Tags:              p.Tags,
		Features:          p.Features,
		InstallationGuide: p.InstallationGuide,
		IsFeatured:        p.IsFeatured,
		IsPublic:          p.IsPublic,
		Order:             p.Order,
		StartDate:         datePtr(p.StartDate),
		CompletionDate:    datePtr(p.CompletionDate),
	}
}

func (p projectPayload) apply(project *models.Project) {
	project.Title = p.Title
	project.Slug = p.Slug
	project.ShortDescription = p.ShortDescription
	project.LongDescription = p.LongDescription
	project.CategoryID = p.CategoryID
	project.Status = models.ProjectStatus(p.Status)
	project.DemoType = models.DemoType(p.DemoType)
	project.DemoURL = p.DemoURL
	project.GithubURL = p.GithubURL
	project.DocumentationURL = p.DocumentationURL
	project.FeaturedImage = p.FeaturedImage
	project.Tags = datatypes.JSONSlice[string](nonNil(p.Tags))
	project.Features = datatypes.JSONSlice[string](nonNil(p.Features))
	project.InstallationGuide = p.InstallationGuide
	project.IsFeatured = p.IsFeatured
	project.IsPublic = p.IsPublic
	project.Order = p.Order
	project.StartDate = p.StartDate.timePtr()
	project.CompletionDate = p.CompletionDate.timePtr()
}

func projectFilter(r *http.Request) (database.ProjectFilter, error) {
	q := r.URL.Query()
	featured, err := queryBool(q, "featured")
	if err != nil {
		return database.ProjectFilter{}, err
	}
	return database.ProjectFilter{
		Category:   q.Get("category"),
		Technology: q.Get("technology"),
		Status:     q.Get("status"),
		Featured:   featured,
		Search:     q.Get("search"),
	}, nil
}

// listPublicProjects lists public projects
// @Summary List public projects
// @Tags Public
// @Produce json
// @Param category query string false "Category slug"
// @Param technology query string false "Technology slug"
// @Param status query string false "Project status"
// @Param featured query bool false "Only featured projects"
// @Param search query string false "Title, short description or exact tag"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(12)
// @Success 200 {object} database.Page[projectResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/public/projects [get]
func (h projectHandler) listPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		public := true
		filter.Public = &public

		page, err := h.projectRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, database.MapPage(page, h.serializer.project))
	}
}

// getPublicProject returns a public project by slug
// @Summary Get public project
// @Description Public project with gallery images, demo instance and public code snippets
// @Tags Public
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} projectResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/public/projects/{slug} [get]
func (h projectHandler) getPublicProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindPublicBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		h.responder.WriteJSON(w, h.serializer.projectDetail(*project))
	}
}

// listProjects lists every project for the admin
// @Summary List projects
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param is_public query bool false "Visibility"
// @Success 200 {object} database.Page[models.Project]
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/admin/projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := projectFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.Public, err = queryBool(r.URL.Query(), "is_public"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.projectRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		h.responder.WriteJSON(w, database.MapPage(page, adminProject))
	}
}

// getProject retrieves a project with every relation
// @Summary Get project
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/v1/admin/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		h.responder.WriteJSON(w, adminProject(*project))
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a project. The slug is derived from the title when omitted.
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project body projectPayload true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already used"
// @Router /api/v1/admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := newProjectPayload()
		var project models.Project
		h.saveProject(w, r, &project, payload, true)
	}
}

// updateProject updates a project
// @Summary Update project
// @Description Fields left out of the body keep their stored values. technology_ids replaces the links when present.
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body projectPayload true "Project data"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		h.saveProject(w, r, project, projectPayloadFrom(*project), false)
	}
}

func (h projectHandler) saveProject(w http.ResponseWriter, r *http.Request, project *models.Project, payload projectPayload, isNew bool) {
	ctx := r.Context()
	if err := decodeJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	if payload.CategoryID != nil {
		if _, err := h.categoryRepo.FindByID(ctx, *payload.CategoryID); err != nil {
			h.responder.WriteError(w, wrapReferenceError("category_id", "category", err))
			return
		}
	}

	var technologies []models.Technology
	if payload.TechnologyIDs != nil {
		var err error
		if technologies, err = h.technologyRepo.FindByIDs(ctx, payload.TechnologyIDs); err != nil {
			h.responder.WriteError(w, wrapReferenceError("technology_ids", "technology", err))
			return
		}
	}

	payload.apply(project)
	if err := h.projectRepo.Save(ctx, project, isNew, technologies); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "project", err))
		return
	}

	saved, err := h.projectRepo.FindByID(ctx, project.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
		h.logger.Info().Str("projectID", saved.ID.String()).Str("slug", saved.Slug).Msg("project created")
	}
	h.responder.WriteStatusJSON(w, status, adminProject(*saved))
}

// deleteProject deletes a project with its images, snippets and demo
// @Summary Delete project
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("project"))
	}
}

type projectImagePayload struct {
	Image   string `json:"image" validate:"required,max=255"`
	Caption string `json:"caption" validate:"max=200"`
	Order   int    `json:"order" validate:"gte=0"`
}

func (p projectImagePayload) apply(img *models.ProjectImage) {
	img.Image = p.Image
	img.Caption = p.Caption
	img.Order = p.Order
}

// projectExists answers 404 when the project in the URL is unknown.
func (h projectHandler) projectExists(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	projectID, err := uuidParam(r, "projectID")
	if err != nil {
		h.responder.WriteError(w, err)
		return uuid.Nil, false
	}
	if _, err := h.projectRepo.FindByID(r.Context(), projectID); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
		return uuid.Nil, false
	}
	return projectID, true
}

// listImages lists a project's gallery
// @Summary List project images
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {array} models.ProjectImage
// @Router /api/v1/admin/projects/{projectID}/images [get]
func (h projectHandler) listImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectExists(w, r)
		if !ok {
			return
		}
		images, err := h.imageRepo.FindByProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project images", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(images))
	}
}

// createImage adds an image to a project's gallery
// @Summary Add project image
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param image body projectImagePayload true "Image"
// @Success 201 {object} models.ProjectImage
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/images [post]
func (h projectHandler) createImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectExists(w, r)
		if !ok {
			return
		}

		var payload projectImagePayload
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image := models.ProjectImage{ProjectID: projectID}
		payload.apply(&image)
		if err := h.imageRepo.Add(r.Context(), &image); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project image", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, image)
	}
}

// updateImage updates a gallery image
// @Summary Update project image
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param imageID path string true "Image ID" format(uuid)
// @Param image body projectImagePayload true "Image"
// @Success 200 {object} models.ProjectImage
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/images/{imageID} [put]
func (h projectHandler) updateImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image, err := h.imageRepo.FindInProject(r.Context(), projectID, imageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project image", err))
			return
		}

		payload := projectImagePayload{Image: image.Image, Caption: image.Caption, Order: image.Order}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(image)
		if err := h.imageRepo.Update(r.Context(), image); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project image", err))
			return
		}
		h.responder.WriteJSON(w, image)
	}
}

// deleteImage removes a gallery image
// @Summary Delete project image
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param imageID path string true "Image ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/images/{imageID} [delete]
func (h projectHandler) deleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		imageID, err := uuidParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.imageRepo.FindInProject(r.Context(), projectID, imageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project image", err))
			return
		}
		if err := h.imageRepo.Delete(r.Context(), imageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project image", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("project image"))
	}
}

type codeSnippetPayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"required"`
	Language    string `json:"language" validate:"required,oneof=python javascript java html css sql bash other"`
	IsPublic    bool   `json:"is_public"`
	Order       int    `json:"order" validate:"gte=0"`
}

func codeSnippetPayloadFrom(s models.CodeSnippet) codeSnippetPayload {
	return codeSnippetPayload{
		Title:       s.Title,
		Description: s.Description,
		Code:        s.Code,
		Language:    string(s.Language),
		IsPublic:    s.IsPublic,
		Order:       s.Order,
	}
}

func (p codeSnippetPayload) apply(s *models.CodeSnippet) {
	s.Title = p.Title
	s.Description = p.Description
	s.Code = p.Code
	s.Language = models.CodeLanguage(p.Language)
	s.IsPublic = p.IsPublic
	s.Order = p.Order
}

// listSnippets lists a project's code snippets, private ones included
// @Summary List code snippets
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {array} models.CodeSnippet
// @Router /api/v1/admin/projects/{projectID}/snippets [get]
func (h projectHandler) listSnippets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectExists(w, r)
		if !ok {
			return
		}
		snippets, err := h.snippetRepo.FindByProject(r.Context(), projectID, false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "code snippets", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(snippets))
	}
}

// createSnippet adds a code snippet to a project
// @Summary Add code snippet
// @Description line_count is computed from the code.
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param snippet body codeSnippetPayload true "Snippet"
// @Success 201 {object} models.CodeSnippet
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/snippets [post]
func (h projectHandler) createSnippet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.projectExists(w, r)
		if !ok {
			return
		}

		payload := codeSnippetPayload{Language: string(models.LanguagePython), IsPublic: true}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snippet := models.CodeSnippet{ProjectID: projectID}
		payload.apply(&snippet)
		if err := h.snippetRepo.Add(r.Context(), &snippet); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "code snippet", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, snippet)
	}
}

// updateSnippet updates a code snippet
// @Summary Update code snippet
// @Tags Admin Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param snippetID path string true "Snippet ID" format(uuid)
// @Param snippet body codeSnippetPayload true "Snippet"
// @Success 200 {object} models.CodeSnippet
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/snippets/{snippetID} [put]
func (h projectHandler) updateSnippet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		snippetID, err := uuidParam(r, "snippetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snippet, err := h.snippetRepo.FindInProject(r.Context(), projectID, snippetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "code snippet", err))
			return
		}

		payload := codeSnippetPayloadFrom(*snippet)
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(snippet)
		if err := h.snippetRepo.Update(r.Context(), snippet); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "code snippet", err))
			return
		}
		h.responder.WriteJSON(w, snippet)
	}
}

// deleteSnippet removes a code snippet
// @Summary Delete code snippet
// @Tags Admin Projects
// @Security BearerAuth
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param snippetID path string true "Snippet ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/projects/{projectID}/snippets/{snippetID} [delete]
func (h projectHandler) deleteSnippet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		snippetID, err := uuidParam(r, "snippetID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.snippetRepo.FindInProject(r.Context(), projectID, snippetID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "code snippet", err))
			return
		}
		if err := h.snippetRepo.Delete(r.Context(), snippetID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "code snippet", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("code snippet"))
	}
}
