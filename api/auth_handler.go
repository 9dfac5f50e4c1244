package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/auth"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errDeleteSelf = errs.NewBadRequestError("you cannot delete your own account")

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	adminRepo *database.AdminUserRepo
	tokens    *auth.TokenManager
	validator *validation.Validator
	now       func() time.Time
}

func newAuthHandler(admins *database.AdminUserRepo, tokens *auth.TokenManager, v *validation.Validator) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		adminRepo: admins,
		tokens:    tokens,
		validator: v,
		now:       time.Now,
	}
}

type loginPayload struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Admin       models.AdminUser `json:"admin"`
}

// login exchanges admin credentials for a bearer token
// @Summary Admin login
// @Description Accepts either a username or an email address in login (username is accepted as an alias).
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param credentials body loginPayload true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		login := strings.TrimSpace(payload.Login)
		if login == "" {
			login = strings.TrimSpace(payload.Username)
		}
		if login == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("login"))
			return
		}
		if err := h.validator.Validate(payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		admin, err := h.adminRepo.FindByLogin(r.Context(), login)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "admin user", err))
			return
		}
		if !auth.CheckPassword(admin.PasswordHash, payload.Password) {
			h.logger.Warn().Str("login", login).Str("ip", clientIP(r)).Msg("failed admin login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}
		if !admin.IsActive {
			h.responder.WriteError(w, errs.NewInactiveAccountError())
			return
		}

		token, expires, err := h.tokens.Issue(*admin)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		now := h.now().UTC()
		ip := clientIP(r)
		if err := h.adminRepo.RecordLogin(r.Context(), admin.ID, ip, now); err != nil {
			h.logger.Warn().Err(err).Str("adminID", admin.ID.String()).Msg("failed to record login")
		} else {
			admin.LastLogin = &now
			admin.LastLoginIP = ip
		}

		h.responder.WriteJSON(w, loginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expires,
			Admin:       *admin,
		})
	}
}

// me
// @Summary Current admin
// @Tags Admin Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminUser
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/admin/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := ctxGetAdmin(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}
		h.responder.WriteJSON(w, admin)
	}
}

type adminUserPayload struct {
	Username       string         `json:"username" validate:"required,min=3,max=150"`
	Email          string         `json:"email" validate:"required,email,max=254"`
	Password       *string        `json:"password" validate:"omitempty,min=10,max=128"`
	FirstName      string         `json:"first_name" validate:"max=150"`
	LastName       string         `json:"last_name" validate:"max=150"`
	PhoneNumber    string         `json:"phone_number" validate:"omitempty,phone"`
	Department     string         `json:"department" validate:"max=100"`
	IsSuperAdmin   bool           `json:"is_super_admin"`
	IsActive       bool           `json:"is_active"`
	ProfilePicture string         `json:"profile_picture" validate:"max=255"`
	Bio            string         `json:"bio" validate:"max=500"`
	SocialLinks    map[string]any `json:"social_links"`
}

func adminUserPayloadFrom(u models.AdminUser) adminUserPayload {
	return adminUserPayload{
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    u.PhoneNumber,
		Department:     u.Department,
		IsSuperAdmin:   u.IsSuperAdmin,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		SocialLinks:    u.SocialLinks,
	}
}

func (p adminUserPayload) apply(u *models.AdminUser) error {
	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return errs.NewInvalidFieldError("password", err.Error())
		}
		u.PasswordHash = hash
	}
	u.Username = strings.TrimSpace(p.Username)
	u.Email = strings.TrimSpace(p.Email)
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.PhoneNumber = p.PhoneNumber
	u.Department = p.Department
	u.IsSuperAdmin = p.IsSuperAdmin
	u.IsActive = p.IsActive
	u.ProfilePicture = p.ProfilePicture
	u.Bio = p.Bio
	u.SocialLinks = datatypes.JSONMap(p.SocialLinks)
	return nil
}

// listAdminUsers
// @Summary List admin users
// @Tags Admin Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Username, email or name"
// @Success 200 {array} models.AdminUser
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/admin-users [get]
func (h authHandler) listAdminUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.adminRepo.FindAll(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin users", err))
			return
		}
		h.responder.WriteJSON(w, nonNil(users))
	}
}

// getAdminUser
// @Summary Get admin user
// @Tags Admin Users
// @Security BearerAuth
// @Produce json
// @Param adminID path string true "Admin ID" format(uuid)
// @Success 200 {object} models.AdminUser
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/admin-users/{adminID} [get]
func (h authHandler) getAdminUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "adminID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := h.adminRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin user", err))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// createAdminUser
// @Summary Create admin user
// @Tags Admin Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param admin body adminUserPayload true "Admin user"
// @Success 201 {object} models.AdminUser
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/admin-users [post]
func (h authHandler) createAdminUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := adminUserPayload{IsActive: true}
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if payload.Password == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}
		h.saveAdminUser(w, r, &models.AdminUser{}, payload, true)
	}
}

// updateAdminUser
// @Summary Update admin user
// @Description Omitted fields keep their stored values. The password is only changed when sent.
// @Tags Admin Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param adminID path string true "Admin ID" format(uuid)
// @Param admin body adminUserPayload true "Admin user"
// @Success 200 {object} models.AdminUser
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/admin-users/{adminID} [put]
func (h authHandler) updateAdminUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "adminID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		user, err := h.adminRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin user", err))
			return
		}

		payload := adminUserPayloadFrom(*user)
		if err := decodeJSON(w, r, &payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.saveAdminUser(w, r, user, payload, false)
	}
}

func (h authHandler) saveAdminUser(w http.ResponseWriter, r *http.Request, user *models.AdminUser, payload adminUserPayload, isNew bool) {
	if err := h.validator.Validate(payload); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	if err := payload.apply(user); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	var err error
	if isNew {
		err = h.adminRepo.Add(r.Context(), user)
	} else {
		err = h.adminRepo.Update(r.Context(), user)
	}
	if err != nil {
		op := "update"
		if isNew {
			op = "create"
		}
		h.responder.WriteError(w, wrapDatabaseError(op, "admin user", err))
		return
	}

	if isNew {
		h.logger.Info().Str("adminID", user.ID.String()).Str("username", user.Username).Msg("admin user created")
		h.responder.WriteStatusJSON(w, http.StatusCreated, user)
		return
	}
	h.responder.WriteJSON(w, user)
}

// deleteAdminUser
// @Summary Delete admin user
// @Tags Admin Users
// @Security BearerAuth
// @Produce json
// @Param adminID path string true "Admin ID" format(uuid)
// @Success 200 {object} DeletedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/admin-users/{adminID} [delete]
func (h authHandler) deleteAdminUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "adminID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if current, err := ctxGetAdmin(r.Context()); err == nil && current.ID == id {
			h.responder.WriteError(w, errDeleteSelf)
			return
		}
		if _, err := h.adminRepo.FindByID(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin user", err))
			return
		}
		if err := h.adminRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "admin user", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("admin user"))
	}
}
