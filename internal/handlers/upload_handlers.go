package handlers

import (
	"fmt"
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// UploadResponse describes a stored file.
type UploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// UploadHandler accepts image uploads for catalog entries.
type UploadHandler struct {
	uploader ImageUploader
	fields   []string
}

// NewUploadHandler creates an upload handler reading the given field,
// falling back to the "image" field.
func NewUploadHandler(uploader ImageUploader, field string) *UploadHandler {
	if uploader == nil {
		panic("uploader cannot be nil")
	}
	if field == "" {
		field = constants.DefaultUploadField
	}
	fields := []string{field}
	if field != constants.ImageUploadField {
		fields = append(fields, constants.ImageUploadField)
	}
	return &UploadHandler{
		uploader: uploader,
		fields:   fields,
	}
}

// Upload stores a file under the subdirectory named by the dir query parameter.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get(constants.QueryParamDir)
	if !upload.IsAllowedDir(dir) {
		utils.ErrorFromAppError(w, utils.NewValidationError(constants.QueryParamDir,
			fmt.Sprintf("Must be one of %v", upload.Directories)))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.uploader.MaxSize()+constants.MaxMultipartMemory)
	file, err := upload.FromRequest(r, h.uploader.MaxSize(), h.fields...)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	res := h.uploader.Save(dir, "", file)
	if !res.Success {
		utils.ErrorFromAppError(w, utils.ParseError(res.Err))
		return
	}

	utils.JSON(w, http.StatusCreated, UploadResponse{
		Filename: res.Filename,
		Path:     res.PublicPath,
		Size:     res.Size,
		MimeType: res.MimeType,
	})
}
