package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	testHandler       testHandler
	homeHandler       homeHandler
	projectHandler    projectHandler
	technologyHandler technologyHandler
	demoHandler       demoHandler
	contentHandler    contentHandler
	contactHandler    contactHandler
	settingsHandler   settingsHandler
	experienceHandler experienceHandler
	educationHandler  educationHandler
	resumeHandler     resumeHandler
	analyticsHandler  analyticsHandler
	authHandler       authHandler
	mediaHandler      mediaHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"validation failed"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details string            `json:"details,omitempty" example:"title: This field is required"`
}

// DeletedResponse is returned by every delete endpoint
type DeletedResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"project deleted successfully"`
}
