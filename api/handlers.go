package api

import (
	"time"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/validation"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, cfg config.AppConfig, startupTime time.Time) *routeHandlers {
	db := deps.Database
	ser := newSerializer(deps.Storage, cfg.SiteURL)
	v := validation.New()

	return &routeHandlers{
		testHandler:       newTestHandler(db, startupTime),
		homeHandler:       newHomeHandler(db, ser),
		projectHandler:    newProjectHandler(db, ser, v),
		technologyHandler: newTechnologyHandler(db.TechnologyRepo(), db.CategoryRepo(), v),
		demoHandler:       newDemoHandler(db.DemoRepo(), db.ProjectRepo(), ser, v),
		contentHandler:    newContentHandler(db, ser, v),
		contactHandler:    newContactHandler(db.ContactMessageRepo(), deps.Notifier, cfg.Notify.Timeout, v),
		settingsHandler:   newSettingsHandler(db.SiteSettingsRepo(), ser, v),
		experienceHandler: newExperienceHandler(db, ser, v),
		educationHandler:  newEducationHandler(db.EducationRepo(), ser, v),
		resumeHandler:     newResumeHandler(db, deps.Storage, ser, v),
		analyticsHandler:  newAnalyticsHandler(db.VisitorAnalyticsRepo(), v),
		authHandler:       newAuthHandler(db.AdminUserRepo(), deps.Tokens, v),
		mediaHandler:      newMediaHandler(deps.Storage),
	}
}
