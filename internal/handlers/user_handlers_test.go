package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

func newUserMock() *MockUserService {
	return &MockUserService{
		ListUsersFunc: func(ctx context.Context, limit int) ([]map[string]interface{}, error) {
			return []map[string]interface{}{{"id": 1, "email": "a@example.com"}}, nil
		},
		GetUserByIDFunc: func(ctx context.Context, id int64) (map[string]interface{}, error) {
			if id != 1 {
				return nil, utils.NewNotFoundError("User", id)
			}
			return map[string]interface{}{"id": id}, nil
		},
		UpdateRoleFunc: func(ctx context.Context, id int64, role string) (map[string]interface{}, error) {
			return map[string]interface{}{"id": id, "role": role}, nil
		},
		DeleteUserFunc: func(ctx context.Context, id int64) error { return nil },
		UpdateAvatarFunc: func(ctx context.Context, id int64, f upload.File) (map[string]interface{}, error) {
			return map[string]interface{}{"id": id, "avatar": "/uploads/users/" + f.Filename}, nil
		},
	}
}

func TestUserHandler_ListAndGet(t *testing.T) {
	h := NewUserHandler(newUserMock(), 1024)

	w := httptest.NewRecorder()
	h.ListUsers(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.GetUser(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/users/1", nil), map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.GetUser(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/users/2", nil), map[string]string{"id": "2"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UpdateRole(t *testing.T) {
	utils.InitValidator()
	h := NewUserHandler(newUserMock(), 1024)

	r := withURLParams(jsonRequest(http.MethodPut, "/api/users/3/role", `{"role":"moderator"}`), map[string]string{"id": "3"})
	w := httptest.NewRecorder()
	h.UpdateRole(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"moderator"`)

	r = withURLParams(jsonRequest(http.MethodPut, "/api/users/3/role", `{"role":"owner"}`), map[string]string{"id": "3"})
	w = httptest.NewRecorder()
	h.UpdateRole(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_DeleteSelf(t *testing.T) {
	h := NewUserHandler(newUserMock(), 1024)

	r := withSession(httptest.NewRequest(http.MethodDelete, "/api/users/5", nil), 5, constants.RoleAdmin)
	r = withURLParams(r, map[string]string{"id": "5"})
	w := httptest.NewRecorder()
	h.DeleteUser(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = withSession(httptest.NewRequest(http.MethodDelete, "/api/users/6", nil), 5, constants.RoleAdmin)
	r = withURLParams(r, map[string]string{"id": "6"})
	w = httptest.NewRecorder()
	h.DeleteUser(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func imageRequest(t *testing.T, target, field string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, "me.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUserHandler_UpdateAvatar(t *testing.T) {
	h := NewUserHandler(newUserMock(), 1024)

	w := httptest.NewRecorder()
	h.UpdateAvatar(w, imageRequest(t, "/api/users/me/avatar", "image", []byte("x")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.UpdateAvatar(w, withSession(imageRequest(t, "/api/users/me/avatar", "image", []byte("x")), 3, constants.RoleUser))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/uploads/users/me.png")

	w = httptest.NewRecorder()
	h.UpdateAvatar(w, withSession(imageRequest(t, "/api/users/me/avatar", "file", []byte("x")), 3, constants.RoleUser))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
