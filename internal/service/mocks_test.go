package service

import (
	"strings"
	"sync"

	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// MockImageStore records saves and deletions without touching the filesystem.
type MockImageStore struct {
	mu      sync.Mutex
	Deleted []string
	Saved   []string
	Reject  bool
}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{}
}

func (m *MockImageStore) Save(dir, prefix string, f upload.File) upload.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reject {
		err := utils.NewValidationError("file", "File type is not allowed")
		return upload.Result{Success: false, Error: err.Message, Err: err}
	}
	path := "/uploads/" + dir + "/" + prefix + "-" + f.Filename
	m.Saved = append(m.Saved, path)
	return upload.Result{Success: true, Filename: prefix + "-" + f.Filename, PublicPath: path, Size: f.Size(), MimeType: f.ContentType}
}

func (m *MockImageStore) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, path)
	return nil
}

// IsStoredPath accepts any single file name directly under "/uploads/<dir>/".
func (m *MockImageStore) IsStoredPath(path, dir string) bool {
	name, ok := strings.CutPrefix(path, "/uploads/"+dir+"/")
	return ok && upload.IsAllowedDir(dir) && name != "" && !strings.Contains(name, "/")
}
