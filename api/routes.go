package api

import (
	"github.com/go-chi/chi/v5"
)

// setupTestRoutes sets up the unauthenticated health check routes
func setupTestRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/api/v1/test", func(r chi.Router) {
		r.Get("/ping", handlers.testHandler.ping())
		r.Get("/hello", handlers.testHandler.hello())
	})
}

// setupPublicRoutes sets up the read-mostly routes used by the portfolio frontend
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/api/v1/public", func(r chi.Router) {
		r.Get("/home", handlers.homeHandler.getHome())
		r.Get("/stats", handlers.homeHandler.getStats())

		// Projects
		r.Get("/projects", handlers.projectHandler.listPublicProjects())
		r.Get("/projects/{slug}", handlers.projectHandler.getPublicProject())
		r.Get("/technologies", handlers.technologyHandler.listPublicTechnologies())
		r.Get("/categories", handlers.technologyHandler.listPublicCategories())

		// Demos
		r.Get("/demos", handlers.demoHandler.listPublicDemos())
		r.Post("/demos/{demoID}/sessions", handlers.demoHandler.startSession())
		r.Post("/demos/{demoID}/sessions/{sessionID}/end", handlers.demoHandler.endSession())

		// Content
		r.Get("/testimonials", handlers.contentHandler.listPublicTestimonials())
		r.Get("/rotating-text", handlers.contentHandler.getRotatingTextGroups())
		r.Post("/contact", handlers.contactHandler.submitContact())

		// Settings
		r.Get("/settings", handlers.settingsHandler.getPublicSettings())
		r.Get("/settings/maintenance", handlers.settingsHandler.getMaintenance())
		r.Get("/settings/theme", handlers.settingsHandler.getTheme())
		r.Get("/settings/seo", handlers.settingsHandler.getSEO())
		r.Get("/settings/social", handlers.settingsHandler.getSocial())
		r.Get("/settings/all", handlers.settingsHandler.getAllSettings())

		// Timeline
		r.Get("/experiences", handlers.experienceHandler.listPublicExperiences())
		r.Get("/experiences/{experienceID}", handlers.experienceHandler.getPublicExperience())
		r.Get("/education", handlers.educationHandler.listPublicEducation())
		r.Get("/education/{educationID}", handlers.educationHandler.getPublicEducation())
		r.Get("/about/experience", handlers.experienceHandler.listAboutExperiences())
		r.Get("/about/education", handlers.educationHandler.listAboutEducation())
		r.Get("/about/cv", handlers.resumeHandler.getCV())

		// Resumes
		r.Get("/resumes", handlers.resumeHandler.listPublicResumes())
		r.Get("/resumes/primary", handlers.resumeHandler.getPrimaryResume())
		r.Get("/resumes/{resumeID}", handlers.resumeHandler.getPublicResume())
		r.Get("/resumes/{resumeID}/download", handlers.resumeHandler.downloadResume())
		r.Get("/resumes/{resumeID}/preview", handlers.resumeHandler.previewResume())
		r.Post("/resumes/{resumeID}/view", handlers.resumeHandler.recordView())

		r.Post("/analytics/visits", handlers.analyticsHandler.recordVisit())
	})
}

// setupAdminRoutes sets up the JWT protected management API
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Post("/auth/login", handlers.authHandler.login())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/me", handlers.authHandler.me())

			r.Route("/technologies", func(r chi.Router) {
				r.Get("/", handlers.technologyHandler.listTechnologies())
				r.Post("/", handlers.technologyHandler.createTechnology())
				r.Get("/{technologyID}", handlers.technologyHandler.getTechnology())
				r.Put("/{technologyID}", handlers.technologyHandler.updateTechnology())
				r.Delete("/{technologyID}", handlers.technologyHandler.deleteTechnology())
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", handlers.technologyHandler.listCategories())
				r.Post("/", handlers.technologyHandler.createCategory())
				r.Get("/{categoryID}", handlers.technologyHandler.getCategory())
				r.Put("/{categoryID}", handlers.technologyHandler.updateCategory())
				r.Delete("/{categoryID}", handlers.technologyHandler.deleteCategory())
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", handlers.projectHandler.listProjects())
				r.Post("/", handlers.projectHandler.createProject())
				r.Get("/{projectID}", handlers.projectHandler.getProject())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())

				r.Get("/{projectID}/images", handlers.projectHandler.listImages())
				r.Post("/{projectID}/images", handlers.projectHandler.createImage())
				r.Put("/{projectID}/images/{imageID}", handlers.projectHandler.updateImage())
				r.Delete("/{projectID}/images/{imageID}", handlers.projectHandler.deleteImage())

				r.Get("/{projectID}/snippets", handlers.projectHandler.listSnippets())
				r.Post("/{projectID}/snippets", handlers.projectHandler.createSnippet())
				r.Put("/{projectID}/snippets/{snippetID}", handlers.projectHandler.updateSnippet())
				r.Delete("/{projectID}/snippets/{snippetID}", handlers.projectHandler.deleteSnippet())
			})

			r.Route("/demos", func(r chi.Router) {
				r.Get("/", handlers.demoHandler.listDemos())
				r.Post("/", handlers.demoHandler.createDemo())
				r.Get("/{demoID}", handlers.demoHandler.getDemo())
				r.Put("/{demoID}", handlers.demoHandler.updateDemo())
				r.Delete("/{demoID}", handlers.demoHandler.deleteDemo())
				r.Get("/{demoID}/stats", handlers.demoHandler.listStats())
			})

			r.Route("/content-blocks", func(r chi.Router) {
				r.Get("/", handlers.contentHandler.listContentBlocks())
				r.Post("/", handlers.contentHandler.createContentBlock())
				r.Get("/{blockID}", handlers.contentHandler.getContentBlock())
				r.Put("/{blockID}", handlers.contentHandler.updateContentBlock())
				r.Delete("/{blockID}", handlers.contentHandler.deleteContentBlock())
			})

			r.Route("/testimonials", func(r chi.Router) {
				r.Get("/", handlers.contentHandler.listTestimonials())
				r.Post("/", handlers.contentHandler.createTestimonial())
				r.Get("/{testimonialID}", handlers.contentHandler.getTestimonial())
				r.Put("/{testimonialID}", handlers.contentHandler.updateTestimonial())
				r.Delete("/{testimonialID}", handlers.contentHandler.deleteTestimonial())
			})

			r.Route("/rotating-texts", func(r chi.Router) {
				r.Get("/", handlers.contentHandler.listRotatingTexts())
				r.Post("/", handlers.contentHandler.createRotatingText())
				r.Post("/activate", handlers.contentHandler.setRotatingTextsActive())
				r.Get("/{textID}", handlers.contentHandler.getRotatingText())
				r.Put("/{textID}", handlers.contentHandler.updateRotatingText())
				r.Delete("/{textID}", handlers.contentHandler.deleteRotatingText())
			})

			r.Route("/experiences", func(r chi.Router) {
				r.Get("/", handlers.experienceHandler.listExperiences())
				r.Post("/", handlers.experienceHandler.createExperience())
				r.Get("/{experienceID}", handlers.experienceHandler.getExperience())
				r.Put("/{experienceID}", handlers.experienceHandler.updateExperience())
				r.Delete("/{experienceID}", handlers.experienceHandler.deleteExperience())
			})

			r.Route("/education", func(r chi.Router) {
				r.Get("/", handlers.educationHandler.listEducation())
				r.Post("/", handlers.educationHandler.createEducation())
				r.Get("/{educationID}", handlers.educationHandler.getEducation())
				r.Put("/{educationID}", handlers.educationHandler.updateEducation())
				r.Delete("/{educationID}", handlers.educationHandler.deleteEducation())
			})

			r.Route("/resumes", func(r chi.Router) {
				r.Get("/", handlers.resumeHandler.listResumes())
				r.Post("/", handlers.resumeHandler.createResume())
				r.Get("/{resumeID}", handlers.resumeHandler.getResume())
				r.Put("/{resumeID}", handlers.resumeHandler.updateResume())
				r.Delete("/{resumeID}", handlers.resumeHandler.deleteResume())
				r.Post("/{resumeID}/primary", handlers.resumeHandler.setPrimaryResume())
			})

			r.Route("/contact-messages", func(r chi.Router) {
				r.Get("/", handlers.contactHandler.listMessages())
				r.Get("/{messageID}", handlers.contactHandler.getMessage())
				r.Put("/{messageID}", handlers.contactHandler.updateMessage())
				r.Delete("/{messageID}", handlers.contactHandler.deleteMessage())
			})

			r.Get("/analytics/visits", handlers.analyticsHandler.listVisits())

			r.Get("/settings", handlers.settingsHandler.getSettings())
			r.Put("/settings", handlers.settingsHandler.updateSettings())

			r.Post("/media", handlers.mediaHandler.uploadMedia())
			r.Delete("/media", handlers.mediaHandler.deleteMedia())

			// Super admin only
			r.Route("/admin-users", func(r chi.Router) {
				r.Use(authMiddleware.requireSuperAdmin)
				r.Get("/", handlers.authHandler.listAdminUsers())
				r.Post("/", handlers.authHandler.createAdminUser())
				r.Get("/{adminID}", handlers.authHandler.getAdminUser())
				r.Put("/{adminID}", handlers.authHandler.updateAdminUser())
				r.Delete("/{adminID}", handlers.authHandler.deleteAdminUser())
			})
		})
	})
}
