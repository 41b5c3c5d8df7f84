package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// FromRequest reads the first present field of fields from a multipart
// request. At most maxSize+1 bytes are read, so an oversized file is still
// detected by Validate without buffering all of it.
func FromRequest(r *http.Request, maxSize int64, fields ...string) (File, error) {
	if err := r.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.Is(err, multipart.ErrMessageTooLarge) || errors.As(err, &maxErr) {
			return File{}, utils.NewValidationError("file", constants.MsgRequestBodyTooLarge)
		}
		return File{}, utils.NewBadRequestError("Request must be multipart/form-data")
	}

	for _, field := range fields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return File{}, utils.NewBadRequestError("Invalid file upload")
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
		if err != nil {
			return File{}, utils.NewBadRequestError("Failed to read uploaded file")
		}

		return File{
			Filename:    header.Filename,
			ContentType: header.Header.Get(constants.HeaderContentType),
			Content:     content,
		}, nil
	}

	return File{}, utils.NewValidationError(fields[0], "No file provided")
}
