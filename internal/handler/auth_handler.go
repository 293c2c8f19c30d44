package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnadhif/student-records-api/internal/middleware"
	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/internal/service"
	"github.com/mnadhif/student-records-api/pkg/config"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
	"github.com/mnadhif/student-records-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, session: session}
}

// Signup godoc
// @Summary Create user account
// @Description Register a new user credential record
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}

	userID, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{"message": "user created", "userId": userID})
}

// Signin godoc
// @Summary Authenticate user
// @Description Verify credentials and set the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SigninRequest true "Credentials"
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} errors.Error
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed payloads collapse into the same generic failure as bad
		// credentials; the signin surface leaks nothing.
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidCredentials, ""))
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, _, err := h.service.IssueSession(user)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)
	response.JSON(c, http.StatusOK, models.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name})
}

// Signout godoc
// @Summary End session
// @Description Clear the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	response.Message(c, http.StatusOK, "signed out")
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's info
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} errors.Error
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, models.UserInfo{ID: claims.Subject, Email: claims.Email, Name: claims.Name})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.session.CookieName, token, int(h.session.Lifetime.Seconds()), "/", "", h.session.CookieSecure, true)
}
