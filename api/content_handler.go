package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const publicTestimonialLimit = 10

// contentHandler serves the editable homepage copy: content blocks, testimonials and the rotating
// hero texts.
type contentHandler struct {
	responder       Responder
	logger          zerolog.Logger
	blockRepo       *database.ContentBlockRepo
	testimonialRepo *database.TestimonialRepo
	textRepo        *database.RotatingTextRepo
	projectRepo     *database.ProjectRepo
	serializer      serializer
	validator       *validation.Validator
}

func newContentHandler(db database.Database, ser serializer, v *validation.Validator) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		blockRepo:       db.ContentBlockRepo(),
		testimonialRepo: db.TestimonialRepo(),
		textRepo:        db.RotatingTextRepo(),
		projectRepo:     db.ProjectRepo(),
		serializer:      ser,
		validator:       v,
	}
}

// listPublicTestimonials
// @Summary List approved testimonials
// @Tags Public
// @Produce json
// @Success 200 {array} testimonialResponse
// @Router /api/v1/public/testimonials [get]
func (h contentHandler) listPublicTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := h.testimonialRepo.FindApproved(r.Context(), publicTestimonialLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}
		h.responder.WriteJSON(w, mapSlice(testimonials, h.serializer.testimonial))
	}
}

type rotatingTextGroups struct {
	HeroTexts    []string `json:"hero_texts"`
	Taglines     []string `json:"taglines"`
	Achievements []string `json:"achievements"`
	Features     []string `json:"features"`
	TypingSpeed  int      `json:"typing_speed"`
	DelaySeconds float64  `json:"delay_seconds"`
}

func groupRotatingTexts(texts []models.RotatingText) rotatingTextGroups {
	groups := rotatingTextGroups{
		HeroTexts:    []string{},
		Taglines:     []string{},
		Achievements: []string{},
		Features:     []string{},
		TypingSpeed:  models.DefaultTypingSpeed,
		DelaySeconds: models.DefaultDelaySeconds,
	}

	heroSeen := false
	for _, t := range texts {
		switch t.TextType {
		case models.TextHero:
			if !heroSeen {
				groups.TypingSpeed = t.TypingSpeed
				groups.DelaySeconds = t.DelaySeconds
				heroSeen = true
			}
			groups.HeroTexts = append(groups.HeroTexts, t.Text)
		case models.TextTagline:
			groups.Taglines = append(groups.Taglines, t.Text)
		case models.TextAchievement:
			groups.Achievements = append(groups.Achievements, t.Text)
		case models.TextFeature:
			groups.Features = append(groups.Features, t.Text)
		}
	}
	return groups
}

// getRotatingTextGroups returns the active rotating texts grouped by type
// @Summary Rotating hero texts
// @Description Animation timings come from the first active hero text.
// @Tags Public
// @Produce json
// @Success 200 {object} rotatingTextGroups
// @Router /api/v1/public/rotating-text [get]
func (h contentHandler) getRotatingTextGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := true
		texts, err := h.textRepo.FindAll(r.Context(), database.RotatingTextFilter{Active: &active})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rotating texts", err))
			return
		}
		h.responder.WriteJSON(w, groupRotatingTexts(texts))
	}
}

type contentBlockPayload struct {
	BlockType  string `json:"block_type" validate:"required,oneof=hero about features testimonials cta"`
	Title      string `json:"title" validate:"required,max=200"`
	Subtitle   string `json:"subtitle" validate:"max=300"`
	Content    string `json:"content"`
	Image      string `json:"image" validate:"max=255"`
	ButtonText string `json:"button_text" validate:"max=50"`
	ButtonURL  string `json:"button_url" validate:"max=500"`
	IsActive   bool   `json:"is_active"`
	Order      int    `json:"order" validate:"gte=0"`
}

func (p contentBlockPayload) apply(b *models.ContentBlock) {
	b.BlockType = models.BlockType(p.BlockType)
	b.Title = p.Title
	b.Subtitle = p.Subtitle
	b.Content = p.Content
	b.Image = p.Image
	b.ButtonText = p.ButtonText
	b.ButtonURL = p.ButtonURL
	b.IsActive = p.IsActive
	b.Order = p.Order
}

// listContentBlocks
// @Summary List content blocks
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param block_type query string false "Block type"
// @Param is_active query bool false "Active flag"
// @Success 200 {array} models.ContentBlock
// @Router /api/v1/admin/content-blocks [get]
func (h contentHandler) listContentBlocks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := queryBool(r.URL.Query(), "is_active")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blocks, err := h.blockRepo.FindAll(r.Context(), database.ContentBlockFilter{
			BlockType: r.URL.Query().Get("block_type"),
			Active:    active,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "content blocks", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(blocks))
	}
}

// getContentBlock
// @Summary Get content block
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param blockID path string true "Block ID" format(uuid)
// @Success 200 {object} models.ContentBlock
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/content-blocks/{blockID} [get]
func (h contentHandler) getContentBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "blockID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		block, err := h.blockRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "content block", err))
			return
		}
		h.responder.WriteJSON(w, block)
	}
}

// createContentBlock
// @Summary Create content block
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param block body contentBlockPayload true "Content block"
// @Success 201 {object} models.ContentBlock
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/content-blocks [post]
func (h contentHandler) createContentBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := contentBlockPayload{IsActive: true}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var block models.ContentBlock
		payload.apply(&block)
		if err := h.blockRepo.Add(r.Context(), &block); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "content block", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, block)
	}
}

// updateContentBlock
// @Summary Update content block
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param blockID path string true "Block ID" format(uuid)
// @Param block body contentBlockPayload true "Content block"
// @Success 200 {object} models.ContentBlock
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/content-blocks/{blockID} [put]
func (h contentHandler) updateContentBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "blockID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		block, err := h.blockRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "content block", err))
			return
		}

		payload := contentBlockPayload{
			BlockType:  string(block.BlockType),
			Title:      block.Title,
			Subtitle:   block.Subtitle,
			Content:    block.Content,
			Image:      block.Image,
			ButtonText: block.ButtonText,
			ButtonURL:  block.ButtonURL,
			IsActive:   block.IsActive,
			Order:      block.Order,
		}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(block)
		if err := h.blockRepo.Update(r.Context(), block); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "content block", err))
			return
		}
		h.responder.WriteJSON(w, block)
	}
}

// deleteContentBlock
// @Summary Delete content block
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param blockID path string true "Block ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/content-blocks/{blockID} [delete]
func (h contentHandler) deleteContentBlock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "blockID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blockRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "content block", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("content block"))
	}
}

type testimonialPayload struct {
	ClientName  string     `json:"client_name" validate:"required,max=100"`
	ClientRole  string     `json:"client_role" validate:"max=100"`
	ClientImage string     `json:"client_image" validate:"max=255"`
	Content     string     `json:"content" validate:"required"`
	Rating      int        `json:"rating" validate:"gte=1,lte=5"`
	ProjectID   *uuid.UUID `json:"project_id"`
	IsFeatured  bool       `json:"is_featured"`
	IsApproved  bool       `json:"is_approved"`
	Order       int        `json:"order" validate:"gte=0"`
}

func (p testimonialPayload) apply(t *models.Testimonial) {
	t.ClientName = p.ClientName
	t.ClientRole = p.ClientRole
	t.ClientImage = p.ClientImage
	t.Content = p.Content
	t.Rating = p.Rating
	t.ProjectID = p.ProjectID
	t.IsFeatured = p.IsFeatured
	t.IsApproved = p.IsApproved
	t.Order = p.Order
}

// listTestimonials
// @Summary List testimonials
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param is_approved query bool false "Approval state"
// @Param is_featured query bool false "Featured flag"
// @Param search query string false "Client name or content"
// @Success 200 {object} database.Page[models.Testimonial]
// @Router /api/v1/admin/testimonials [get]
func (h contentHandler) listTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		approved, err := queryBool(q, "is_approved")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		featured, err := queryBool(q, "is_featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.TestimonialFilter{Approved: approved, Featured: featured, Search: q.Get("search")}
		page, err := h.testimonialRepo.FindPage(r.Context(), filter, pageRequest(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getTestimonial
// @Summary Get testimonial
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} models.Testimonial
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/testimonials/{testimonialID} [get]
func (h contentHandler) getTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "testimonialID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		testimonial, err := h.testimonialRepo.FindByID(r.Context(), id, "Project")
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonial", err))
			return
		}
		h.responder.WriteJSON(w, testimonial)
	}
}

// createTestimonial
// @Summary Create testimonial
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param testimonial body testimonialPayload true "Testimonial"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/testimonials [post]
func (h contentHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var testimonial models.Testimonial
		h.saveTestimonial(w, r, &testimonial, testimonialPayload{Rating: 5}, true)
	}
}

// updateTestimonial
// @Summary Update testimonial
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Param testimonial body testimonialPayload true "Testimonial"
// @Success 200 {object} models.Testimonial
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/testimonials/{testimonialID} [put]
func (h contentHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "testimonialID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		testimonial, err := h.testimonialRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonial", err))
			return
		}

		payload := testimonialPayload{
			ClientName:  testimonial.ClientName,
			ClientRole:  testimonial.ClientRole,
			ClientImage: testimonial.ClientImage,
			Content:     testimonial.Content,
			Rating:      testimonial.Rating,
			ProjectID:   testimonial.ProjectID,
			IsFeatured:  testimonial.IsFeatured,
			IsApproved:  testimonial.IsApproved,
			Order:       testimonial.Order,
		}
		h.saveTestimonial(w, r, testimonial, payload, false)
	}
}

func (h contentHandler) saveTestimonial(w http.ResponseWriter, r *http.Request, testimonial *models.Testimonial, payload testimonialPayload, isNew bool) {
	ctx := r.Context()
	if err := decodeJSON(w, r, &payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if payload.ProjectID != nil {
		if _, err := h.projectRepo.FindByIDs(ctx, []uuid.UUID{*payload.ProjectID}); err != nil {
			h.responder.WriteError(w, wrapReferenceError("project_id", "project", err))
			return
		}
	}

	payload.apply(testimonial)
	var err error
	if isNew {
		err = h.testimonialRepo.Add(ctx, testimonial)
	} else {
		err = h.testimonialRepo.Update(ctx, testimonial)
	}
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("save", "testimonial", err))
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	h.responder.WriteStatusJSON(w, status, testimonial)
}

// deleteTestimonial
// @Summary Delete testimonial
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/testimonials/{testimonialID} [delete]
func (h contentHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "testimonialID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.testimonialRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "testimonial", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("testimonial"))
	}
}

type rotatingTextPayload struct {
	Text         string  `json:"text" validate:"required,max=200"`
	TextType     string  `json:"text_type" validate:"required,oneof=hero tagline achievement feature"`
	Order        int     `json:"order" validate:"gte=0"`
	IsActive     bool    `json:"is_active"`
	DelaySeconds float64 `json:"delay_seconds" validate:"gte=0.5"`
	TypingSpeed  int     `json:"typing_speed" validate:"gte=50"`
}

func (p rotatingTextPayload) apply(t *models.RotatingText) {
	t.Text = p.Text
	t.TextType = models.TextType(p.TextType)
	t.Order = p.Order
	t.IsActive = p.IsActive
	t.DelaySeconds = p.DelaySeconds
	t.TypingSpeed = p.TypingSpeed
}

// listRotatingTexts
// @Summary List rotating texts
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param text_type query string false "Text type"
// @Param is_active query bool false "Active flag"
// @Success 200 {array} models.RotatingText
// @Router /api/v1/admin/rotating-texts [get]
func (h contentHandler) listRotatingTexts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := queryBool(r.URL.Query(), "is_active")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		texts, err := h.textRepo.FindAll(r.Context(), database.RotatingTextFilter{
			TextType: r.URL.Query().Get("text_type"),
			Active:   active,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rotating texts", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(texts))
	}
}

// getRotatingText
// @Summary Get rotating text
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param textID path string true "Text ID" format(uuid)
// @Success 200 {object} models.RotatingText
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/rotating-texts/{textID} [get]
func (h contentHandler) getRotatingText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "textID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		text, err := h.textRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rotating text", err))
			return
		}
		h.responder.WriteJSON(w, text)
	}
}

// createRotatingText
// @Summary Create rotating text
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param text body rotatingTextPayload true "Rotating text"
// @Success 201 {object} models.RotatingText
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rotating-texts [post]
func (h contentHandler) createRotatingText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := rotatingTextPayload{
			TextType:     string(models.TextHero),
			IsActive:     true,
			DelaySeconds: models.DefaultDelaySeconds,
			TypingSpeed:  models.DefaultTypingSpeed,
		}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var text models.RotatingText
		payload.apply(&text)
		if err := h.textRepo.Add(r.Context(), &text); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "rotating text", err))
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, text)
	}
}

// updateRotatingText
// @Summary Update rotating text
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param textID path string true "Text ID" format(uuid)
// @Param text body rotatingTextPayload true "Rotating text"
// @Success 200 {object} models.RotatingText
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/rotating-texts/{textID} [put]
func (h contentHandler) updateRotatingText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "textID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		text, err := h.textRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "rotating text", err))
			return
		}

		payload := rotatingTextPayload{
			Text:         text.Text,
			TextType:     string(text.TextType),
			Order:        text.Order,
			IsActive:     text.IsActive,
			DelaySeconds: text.DelaySeconds,
			TypingSpeed:  text.TypingSpeed,
		}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(text)
		if err := h.textRepo.Update(r.Context(), text); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "rotating text", err))
			return
		}
		h.responder.WriteJSON(w, text)
	}
}

// deleteRotatingText
// @Summary Delete rotating text
// @Tags Admin Content
// @Security BearerAuth
// @Produce json
// @Param textID path string true "Text ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/rotating-texts/{textID} [delete]
func (h contentHandler) deleteRotatingText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "textID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.textRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "rotating text", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("rotating text"))
	}
}

type setActivePayload struct {
	IDs      []uuid.UUID `json:"ids" validate:"required,min=1"`
	IsActive *bool       `json:"is_active" validate:"required"`
}

// setRotatingTextsActive activates or deactivates several texts at once
// @Summary Bulk activate rotating texts
// @Tags Admin Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body setActivePayload true "Ids and target state"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/rotating-texts/activate [post]
func (h contentHandler) setRotatingTextsActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setActivePayload
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.textRepo.SetActive(r.Context(), payload.IDs, *payload.IsActive)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "rotating texts", err))
			return
		}
		h.logger.Info().Int64("updated", updated).Bool("isActive", *payload.IsActive).Msg("rotating texts toggled")
		h.responder.WriteJSON(w, map[string]int64{"updated": updated})
	}
}
