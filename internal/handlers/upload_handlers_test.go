package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

func pngRequest(t *testing.T, target, field, contentType string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="photo.png"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func newTestUploader(t *testing.T, maxSize int64) (*upload.Uploader, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "uploads")
	u, err := upload.NewUploader(&config.UploadSettings{BaseDir: base, PublicPrefix: "/uploads", MaxSize: maxSize})
	require.NoError(t, err)
	return u, base
}

func TestUploadHandler_Success(t *testing.T) {
	u, base := newTestUploader(t, 1024)
	h := NewUploadHandler(u, "")

	content := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	w := httptest.NewRecorder()
	h.Upload(w, pngRequest(t, "/api/upload?dir=places", "file", "image/png", content))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp UploadResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "/uploads/places/"+resp.Filename, resp.Path)
	assert.Equal(t, int64(len(content)), resp.Size)
	assert.Equal(t, "image/png", resp.MimeType)

	_, err := os.Stat(filepath.Join(base, "places", resp.Filename))
	assert.NoError(t, err)
}

func TestUploadHandler_ImageFieldFallback(t *testing.T) {
	u, _ := newTestUploader(t, 1024)
	h := NewUploadHandler(u, "file")

	w := httptest.NewRecorder()
	h.Upload(w, pngRequest(t, "/api/upload?dir=cities", "image", "image/png", []byte("\x89PNG\r\n\x1a\nabc")))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUploadHandler_Rejections(t *testing.T) {
	u, base := newTestUploader(t, 16)
	h := NewUploadHandler(u, "file")

	tests := []struct {
		name        string
		target      string
		contentType string
		content     []byte
	}{
		{"missing dir", "/api/upload", "image/png", []byte("\x89PNG\r\n\x1a\n")},
		{"unknown dir", "/api/upload?dir=secrets", "image/png", []byte("\x89PNG\r\n\x1a\n")},
		{"bad mime", "/api/upload?dir=places", "application/pdf", []byte("%PDF-1.4")},
		{"too large", "/api/upload?dir=places", "image/png", make([]byte, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Upload(w, pngRequest(t, tt.target, "file", tt.contentType, tt.content))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body utils.ErrorResponse
			decodeBody(t, w, &body)
			assert.NotEmpty(t, body.Error)
		})
	}

	_, err := os.Stat(base)
	assert.True(t, os.IsNotExist(err), "rejected uploads never touch the filesystem")
}

func TestUploadHandler_DirectoryFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	u, err := upload.NewUploader(&config.UploadSettings{BaseDir: blocker, MaxSize: 1024})
	require.NoError(t, err)
	h := NewUploadHandler(u, "file")

	w := httptest.NewRecorder()
	h.Upload(w, pngRequest(t, "/api/upload?dir=places", "file", "image/png", []byte("\x89PNG\r\n\x1a\nabc")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
