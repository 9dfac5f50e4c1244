package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	homeFeaturedProjects     = 6
	homeFeaturedTechnologies = 8
	homeRecentProjects       = 4
	homeFeaturedTimeline     = 3
)

type homeHandler struct {
	responder  Responder
	logger     zerolog.Logger
	database   database.Database
	serializer serializer
}

func newHomeHandler(db database.Database, ser serializer) homeHandler {
	logger := log.With().Str("handlerName", "homeHandler").Logger()

	return homeHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		database:   db,
		serializer: ser,
	}
}

type homeResponse struct {
	Stats                database.Stats         `json:"stats"`
	FeaturedProjects     []projectResponse      `json:"featured_projects"`
	FeaturedTechnologies []models.Technology    `json:"featured_technologies"`
	RecentProjects       []projectResponse      `json:"recent_projects"`
	ContentBlocks        []contentBlockResponse `json:"content_blocks"`
	FeaturedExperiences  []experienceResponse   `json:"featured_experiences"`
	FeaturedEducation    []educationResponse    `json:"featured_education"`
	PrimaryResume        *resumeResponse        `json:"primary_resume"`
}

// getHome aggregates everything the landing page renders
// @Summary Home page data
// @Description Stats, featured and recent projects, featured technologies, active content blocks, featured timeline entries and the primary resume
// @Tags Public
// @Produce json
// @Success 200 {object} homeResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/public/home [get]
func (h homeHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			stats        database.Stats
			featured     []models.Project
			technologies []models.Technology
			recent       []models.Project
			blocks       []models.ContentBlock
			experiences  []models.Experience
			education    []models.Education
			primary      *models.Resume
		)
		active := true

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			stats, err = h.database.StatsRepo().Get(ctx)
			return err
		})
		g.Go(func() (err error) {
			featured, err = h.database.ProjectRepo().FindFeatured(ctx, homeFeaturedProjects)
			return err
		})
		g.Go(func() (err error) {
			technologies, err = h.database.TechnologyRepo().FindFeatured(ctx, homeFeaturedTechnologies)
			return err
		})
		g.Go(func() (err error) {
			recent, err = h.database.ProjectRepo().FindRecent(ctx, homeRecentProjects)
			return err
		})
		g.Go(func() (err error) {
			blocks, err = h.database.ContentBlockRepo().FindAll(ctx, database.ContentBlockFilter{Active: &active})
			return err
		})
		g.Go(func() (err error) {
			experiences, err = h.database.ExperienceRepo().FindFeatured(ctx, homeFeaturedTimeline)
			return err
		})
		g.Go(func() (err error) {
			education, err = h.database.EducationRepo().FindFeatured(ctx, homeFeaturedTimeline)
			return err
		})
		g.Go(func() error {
			resume, err := h.database.ResumeRepo().FindPrimaryPublic(ctx)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			primary = resume
			return err
		})

		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "home page", err))
			return
		}

		ser := h.serializer
		response := homeResponse{
			Stats:                stats,
			FeaturedProjects:     ser.projects(featured),
			FeaturedTechnologies: nonNil(technologies),
			RecentProjects:       ser.projects(recent),
			ContentBlocks:        mapSlice(blocks, ser.contentBlock),
			FeaturedExperiences:  ser.experiences(experiences),
			FeaturedEducation:    ser.educationList(education),
		}
		if primary != nil {
			resume := ser.resume(*primary)
			response.PrimaryResume = &resume
		}

		h.responder.WriteJSON(w, response)
	}
}

// getStats returns the headline counters
// @Summary Portfolio statistics
// @Tags Public
// @Produce json
// @Success 200 {object} database.Stats
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/public/stats [get]
func (h homeHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.database.StatsRepo().Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "stats", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}
