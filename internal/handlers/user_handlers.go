package handlers

import (
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// UserHandler handles user administration and profile routes
type UserHandler struct {
	userService UserServiceInterface
	maxSize     int64
}

// NewUserHandler creates a new UserHandler. maxSize bounds avatar uploads.
func NewUserHandler(userService UserServiceInterface, maxSize int64) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
		maxSize:     maxSize,
	}
}

// ListUsers returns users without password hashes.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context(), utils.ParseLimit(r))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// GetUser returns a single user.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// UpdateRole changes a user's role.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var update models.RoleUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateRole(r.Context(), id, update.Role)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// DeleteUser removes a user. Administrators cannot delete themselves.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, constants.ParamID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if self, ok := auth.GetUserID(r); ok && self == id {
		utils.BadRequest(w, "You cannot delete your own account here", nil)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	utils.Message(w, constants.MsgDeleted)
}

// UpdateAvatar stores the multipart "image" field as the caller's avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+constants.MaxMultipartMemory)
	file, err := upload.FromRequest(r, h.maxSize, constants.ImageUploadField)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateAvatar(r.Context(), userID, file)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
