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

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SiteSettingsRepo
	serializer   serializer
	validator    *validation.Validator
}

func newSettingsHandler(settings *database.SiteSettingsRepo, ser serializer, v *validation.Validator) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		settingsRepo: settings,
		serializer:   ser,
		validator:    v,
	}
}

// withSettings loads the singleton and hands it to fn, answering the error itself.
func (h settingsHandler) withSettings(fn func(w http.ResponseWriter, st models.SiteSettings)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}
		fn(w, *settings)
	}
}

// getPublicSettings
// @Summary Public site settings
// @Tags Public
// @Produce json
// @Success 200 {object} publicSettingsResponse
// @Router /api/v1/public/settings [get]
func (h settingsHandler) getPublicSettings() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		h.responder.WriteJSON(w, h.serializer.publicSettings(st))
	})
}

type maintenanceResponse struct {
	MaintenanceMode    bool   `json:"maintenance_mode"`
	MaintenanceMessage string `json:"maintenance_message"`
	SiteName           string `json:"site_name"`
}

// getMaintenance
// @Summary Maintenance status
// @Tags Public
// @Produce json
// @Success 200 {object} maintenanceResponse
// @Router /api/v1/public/settings/maintenance [get]
func (h settingsHandler) getMaintenance() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		h.responder.WriteJSON(w, maintenanceResponse{
			MaintenanceMode:    st.MaintenanceMode,
			MaintenanceMessage: st.MaintenanceMessage,
			SiteName:           st.SiteName,
		})
	})
}

type themeResponse struct {
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	DarkMode       bool    `json:"dark_mode"`
	SiteName       string  `json:"site_name"`
	Logo           *string `json:"logo"`
	Favicon        *string `json:"favicon"`
}

func (h settingsHandler) theme(st models.SiteSettings) themeResponse {
	return themeResponse{
		PrimaryColor:   st.PrimaryColor,
		SecondaryColor: st.SecondaryColor,
		DarkMode:       st.DarkMode,
		SiteName:       st.SiteName,
		Logo:           h.serializer.mediaURL(st.Logo),
		Favicon:        h.serializer.mediaURL(st.Favicon),
	}
}

// getTheme
// @Summary Theme settings
// @Tags Public
// @Produce json
// @Success 200 {object} themeResponse
// @Router /api/v1/public/settings/theme [get]
func (h settingsHandler) getTheme() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		h.responder.WriteJSON(w, h.theme(st))
	})
}

type seoResponse struct {
	SiteName            string  `json:"site_name"`
	SiteTagline         string  `json:"site_tagline"`
	SEODescription      string  `json:"seo_description"`
	SEOKeywords         string  `json:"seo_keywords"`
	Logo                *string `json:"logo"`
	SelfDescription     string  `json:"self_description"`
	SelfLongDescription string  `json:"self_long_description"`
}

// getSEO
// @Summary SEO settings
// @Tags Public
// @Produce json
// @Success 200 {object} seoResponse
// @Router /api/v1/public/settings/seo [get]
func (h settingsHandler) getSEO() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		h.responder.WriteJSON(w, seoResponse{
			SiteName:            st.SiteName,
			SiteTagline:         st.SiteTagline,
			SEODescription:      st.SEODescription,
			SEOKeywords:         st.SEOKeywords,
			Logo:                h.serializer.mediaURL(st.Logo),
			SelfDescription:     st.SelfDescription,
			SelfLongDescription: st.SelfLongDescription,
		})
	})
}

// getSocial
// @Summary Social links
// @Description Every known network is listed, null when unset.
// @Tags Public
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/public/settings/social [get]
func (h settingsHandler) getSocial() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		h.responder.WriteJSON(w, socialLinks(st))
	})
}

type siteSection struct {
	Name                string  `json:"name"`
	Tagline             string  `json:"tagline"`
	ContactEmail        string  `json:"contact_email"`
	ContactPhone        string  `json:"contact_phone"`
	Location            string  `json:"location"`
	Logo                *string `json:"logo"`
	Favicon             *string `json:"favicon"`
	MyImage             *string `json:"my_image"`
	SelfDescription     string  `json:"self_description"`
	SelfLongDescription string  `json:"self_long_description"`
}

type allSettingsResponse struct {
	Site  siteSection   `json:"site"`
	Theme themeResponse `json:"theme"`
	SEO   struct {
		Description string `json:"description"`
		Keywords    string `json:"keywords"`
	} `json:"seo"`
	Maintenance struct {
		Enabled bool   `json:"enabled"`
		Message string `json:"message"`
	} `json:"maintenance"`
	Social map[string]*string `json:"social"`
}

// getAllSettings
// @Summary Grouped settings
// @Tags Public
// @Produce json
// @Success 200 {object} allSettingsResponse
// @Router /api/v1/public/settings/all [get]
func (h settingsHandler) getAllSettings() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		resp := allSettingsResponse{
			Site: siteSection{
				Name:                st.SiteName,
				Tagline:             st.SiteTagline,
				ContactEmail:        st.ContactEmail,
				ContactPhone:        st.ContactPhone,
				Location:            st.Location,
				Logo:                h.serializer.mediaURL(st.Logo),
				Favicon:             h.serializer.mediaURL(st.Favicon),
				MyImage:             h.serializer.mediaURL(st.MyImage),
				SelfDescription:     st.SelfDescription,
				SelfLongDescription: st.SelfLongDescription,
			},
			Theme:  h.theme(st),
			Social: socialLinks(st),
		}
		resp.SEO.Description = st.SEODescription
		resp.SEO.Keywords = st.SEOKeywords
		resp.Maintenance.Enabled = st.MaintenanceMode
		resp.Maintenance.Message = st.MaintenanceMessage

		h.responder.WriteJSON(w, resp)
	})
}

// getSettings returns the full row, admin-only fields included
// @Summary Get site settings
// @Tags Admin Settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /api/v1/admin/settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return h.withSettings(func(w http.ResponseWriter, st models.SiteSettings) {
		if st.SocialLinks == nil {
			st.SocialLinks = datatypes.JSONMap{}
		}
		h.responder.WriteJSON(w, st)
	})
}

type settingsPayload struct {
	SiteName            string         `json:"site_name" validate:"required,max=100"`
	SiteTagline         string         `json:"site_tagline" validate:"max=200"`
	Logo                string         `json:"logo" validate:"max=255"`
	Favicon             string         `json:"favicon" validate:"max=255"`
	MyImage             string         `json:"my_image" validate:"max=255"`
	SelfDescription     string         `json:"self_description"`
	SelfLongDescription string         `json:"self_long_description"`
	AdminEmail          string         `json:"admin_email" validate:"omitempty,email,max=254"`
	ContactEmail        string         `json:"contact_email" validate:"omitempty,email,max=254"`
	ContactPhone        string         `json:"contact_phone" validate:"omitempty,phone"`
	Location            string         `json:"location" validate:"max=200"`
	PrimaryColor        string         `json:"primary_color" validate:"omitempty,hexcolor,max=7"`
	SecondaryColor      string         `json:"secondary_color" validate:"omitempty,hexcolor,max=7"`
	DarkMode            bool           `json:"dark_mode"`
	SocialLinks         map[string]any `json:"social_links"`
	AnalyticsCode       string         `json:"analytics_code"`
	SEODescription      string         `json:"seo_description"`
	SEOKeywords         string         `json:"seo_keywords"`
	MaintenanceMode     bool           `json:"maintenance_mode"`
	MaintenanceMessage  string         `json:"maintenance_message"`
}

func settingsPayloadFrom(st models.SiteSettings) settingsPayload {
	return settingsPayload{
		SiteName:            st.SiteName,
		SiteTagline:         st.SiteTagline,
		Logo:                st.Logo,
		Favicon:             st.Favicon,
		MyImage:             st.MyImage,
		SelfDescription:     st.SelfDescription,
		SelfLongDescription: st.SelfLongDescription,
		AdminEmail:          st.AdminEmail,
		ContactEmail:        st.ContactEmail,
		ContactPhone:        st.ContactPhone,
		Location:            st.Location,
		PrimaryColor:        st.PrimaryColor,
		SecondaryColor:      st.SecondaryColor,
		DarkMode:            st.DarkMode,
		SocialLinks:         jsonObject(st.SocialLinks),
		AnalyticsCode:       st.AnalyticsCode,
		SEODescription:      st.SEODescription,
		SEOKeywords:         st.SEOKeywords,
		MaintenanceMode:     st.MaintenanceMode,
		MaintenanceMessage:  st.MaintenanceMessage,
	}
}

func (p settingsPayload) apply(st *models.SiteSettings) {
	st.SiteName = p.SiteName
	st.SiteTagline = p.SiteTagline
	st.Logo = p.Logo
	st.Favicon = p.Favicon
	st.MyImage = p.MyImage
	st.SelfDescription = p.SelfDescription
	st.SelfLongDescription = p.SelfLongDescription
	st.AdminEmail = p.AdminEmail
	st.ContactEmail = p.ContactEmail
	st.ContactPhone = p.ContactPhone
	st.Location = p.Location
	st.PrimaryColor = p.PrimaryColor
	st.SecondaryColor = p.SecondaryColor
	st.DarkMode = p.DarkMode
	st.SocialLinks = datatypes.JSONMap(jsonObject(p.SocialLinks))
	st.AnalyticsCode = p.AnalyticsCode
	st.SEODescription = p.SEODescription
	st.SEOKeywords = p.SEOKeywords
	st.MaintenanceMode = p.MaintenanceMode
	st.MaintenanceMessage = p.MaintenanceMessage
}

// updateSettings overwrites the singleton
// @Summary Update site settings
// @Description Fields left out of the body keep their stored values. Exactly one settings row remains afterwards.
// @Tags Admin Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param settings body settingsPayload true "Settings"
// @Success 200 {object} models.SiteSettings
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/settings [put]
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}

		payload := settingsPayloadFrom(*settings)
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload.apply(settings)
		if err := h.settingsRepo.Save(r.Context(), settings); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "site settings", err))
			return
		}
		h.logger.Info().Bool("maintenanceMode", settings.MaintenanceMode).Msg("site settings updated")
		h.responder.WriteJSON(w, settings)
	}
}
