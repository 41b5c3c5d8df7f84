package upload

import (
	"fmt"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// DirectoryError reports that an upload directory could not be created or written to.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("upload directory %s: %v", e.Dir, e.Err)
}

// Unwrap exposes both the sentinel and the underlying filesystem error.
func (e *DirectoryError) Unwrap() []error {
	return []error{utils.ErrDirectory, e.Err}
}

// WriteError reports that file content could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying filesystem error.
func (e *WriteError) Unwrap() []error {
	return []error{utils.ErrWrite, e.Err}
}
