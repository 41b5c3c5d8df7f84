package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService   AuthServiceInterface
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies adds the Secure
// flag to the session cookie and is set in production.
func NewAuthHandler(authService AuthServiceInterface, secureCookies bool) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.authService.RegisterUser(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	auth.SetAuthCookie(w, token, h.secureCookies)
	utils.JSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, token, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	auth.SetAuthCookie(w, token, h.secureCookies)
	utils.JSON(w, http.StatusOK, models.AuthResponse{User: user, Token: token})
}

// Logout clears the session cookie. Tokens are stateless, so nothing is revoked server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAuthCookie(w, h.secureCookies)
	utils.Message(w, constants.MsgLogoutSuccess)
}

// Me returns the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	if session == nil {
		utils.Unauthorized(w, "")
		return
	}
	utils.JSON(w, http.StatusOK, session)
}
