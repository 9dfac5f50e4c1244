package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type technologyHandler struct {
	responder      Responder
	logger         zerolog.Logger
	technologyRepo *database.TechnologyRepo
	categoryRepo   *database.CategoryRepo
	validator      *validation.Validator
}

func newTechnologyHandler(technologies *database.TechnologyRepo, categories *database.CategoryRepo, v *validation.Validator) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		technologyRepo: technologies,
		categoryRepo:   categories,
		validator:      v,
	}
}

type technologyPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100,slug"`
	Type        string `json:"type" validate:"required,oneof=language framework tool database service"`
	Category    string `json:"category" validate:"max=50"`
	Icon        string `json:"icon"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Proficiency int    `json:"proficiency" validate:"gte=0,lte=100"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url,max=500"`
	IsFeatured  bool   `json:"is_featured"`
	Order       int    `json:"order" validate:"gte=0"`
}

func technologyPayloadFrom(t models.Technology) technologyPayload {
	return technologyPayload{
		Name:        t.Name,
		Slug:        t.Slug,
		Type:        string(t.Type),
		Category:    t.Category,
		Icon:        t.Icon,
		Color:       t.Color,
		Proficiency: t.Proficiency,
		Description: t.Description,
		WebsiteURL:  t.WebsiteURL,
		IsFeatured:  t.IsFeatured,
		Order:       t.Order,
	}
}

func (p technologyPayload) apply(t *models.Technology) {
	t.Name = p.Name
	t.Slug = p.Slug
	t.Type = models.TechnologyType(p.Type)
	t.Category = p.Category
	t.Icon = p.Icon
	t.Color = p.Color
	t.Proficiency = p.Proficiency
	t.Description = p.Description
	t.WebsiteURL = p.WebsiteURL
	t.IsFeatured = p.IsFeatured
	t.Order = p.Order
}

func technologyFilter(r *http.Request) (database.TechnologyFilter, error) {
	q := r.URL.Query()
	featured, err := queryBool(q, "featured")
	if err != nil {
		return database.TechnologyFilter{}, err
	}
	return database.TechnologyFilter{
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Featured: featured,
		Search:   q.Get("search"),
	}, nil
}

// listPublicTechnologies lists technologies for the public site
// @Summary List technologies
// @Tags Public
// @Produce json
// @Param category query string false "Category"
// @Param type query string false "Technology type"
// @Param featured query bool false "Only featured"
// @Param search query string false "Name contains"
// @Success 200 {array} models.Technology
// @Router /api/v1/public/technologies [get]
func (h technologyHandler) listPublicTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := technologyFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technologies, err := h.technologyRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technologies", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(technologies))
	}
}

// listPublicCategories lists project categories
// @Summary List categories
// @Tags Public
// @Produce json
// @Success 200 {array} models.ProjectCategory
// @Router /api/v1/public/categories [get]
func (h technologyHandler) listPublicCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context(), "")
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(categories))
	}
}

// listTechnologies
// @Summary List technologies (admin)
// @Tags Admin Technologies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} database.Page[models.Technology]
// @Router /api/v1/admin/technologies [get]
func (h technologyHandler) listTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := technologyFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.technologyRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technologies", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getTechnology
// @Summary Get technology
// @Tags Admin Technologies
// @Security BearerAuth
// @Produce json
// @Param technologyID path string true "Technology ID" format(uuid)
// @Success 200 {object} models.Technology
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/technologies/{technologyID} [get]
func (h technologyHandler) getTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologyRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technology", err))
			return
		}
		h.responder.WriteJSON(w, technology)
	}
}

// createTechnology
// @Summary Create technology
// @Tags Admin Technologies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param technology body technologyPayload true "Technology"
// @Success 201 {object} models.Technology
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/technologies [post]
func (h technologyHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := technologyPayload{Type: string(models.TechnologyLanguage), Color: "#000000", Proficiency: 50}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var technology models.Technology
		payload.apply(&technology)
		if err := h.technologyRepo.Add(r.Context(), &technology); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "technology", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, technology)
	}
}

// updateTechnology
// @Summary Update technology
// @Tags Admin Technologies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param technologyID path string true "Technology ID" format(uuid)
// @Param technology body technologyPayload true "Technology"
// @Success 200 {object} models.Technology
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/technologies/{technologyID} [put]
func (h technologyHandler) updateTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologyRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "technology", err))
			return
		}

		payload := technologyPayloadFrom(*technology)
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(technology)
		if err := h.technologyRepo.Update(r.Context(), technology); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "technology", err))
			return
		}
		h.responder.WriteJSON(w, technology)
	}
}

// deleteTechnology
// @Summary Delete technology
// @Tags Admin Technologies
// @Security BearerAuth
// @Produce json
// @Param technologyID path string true "Technology ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/technologies/{technologyID} [delete]
func (h technologyHandler) deleteTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.technologyRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "technology", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("technology"))
	}
}

type categoryPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100,slug"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"max=50"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Order       int    `json:"order" validate:"gte=0"`
}

func (p categoryPayload) apply(c *models.ProjectCategory) {
	c.Name = p.Name
	c.Slug = p.Slug
	c.Description = p.Description
	c.Icon = p.Icon
	c.Color = p.Color
	c.Order = p.Order
}

// listCategories
// @Summary List categories (admin)
// @Tags Admin Categories
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name contains"
// @Success 200 {array} models.ProjectCategory
// @Router /api/v1/admin/categories [get]
func (h technologyHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(categories))
	}
}

// getCategory
// @Summary Get category
// @Tags Admin Categories
// @Security BearerAuth
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} models.ProjectCategory
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/categories/{categoryID} [get]
func (h technologyHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categoryRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// createCategory
// @Summary Create category
// @Tags Admin Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body categoryPayload true "Category"
// @Success 201 {object} models.ProjectCategory
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/categories [post]
func (h technologyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := categoryPayload{Color: "#3b82f6"}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var category models.ProjectCategory
		payload.apply(&category)
		if err := h.categoryRepo.Add(r.Context(), &category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, category)
	}
}

// updateCategory
// @Summary Update category
// @Tags Admin Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Param category body categoryPayload true "Category"
// @Success 200 {object} models.ProjectCategory
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/categories/{categoryID} [put]
func (h technologyHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categoryRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}

		payload := categoryPayload{
			Name:        category.Name,
			Slug:        category.Slug,
			Description: category.Description,
			Icon:        category.Icon,
			Color:       category.Color,
			Order:       category.Order,
		}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(category)
		if err := h.categoryRepo.Update(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "category", err))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a category; its projects become uncategorised
// @Summary Delete category
// @Tags Admin Categories
// @Security BearerAuth
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/categories/{categoryID} [delete]
func (h technologyHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "category", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("category"))
	}
}
