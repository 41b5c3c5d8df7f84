// Package upload stores user-supplied images under the public uploads directory.
//
// A file moves through validation, directory provisioning, naming and an
// atomic write. Save never returns an error; the outcome is carried in Result
// and the HTTP layer decides the status code.
package upload

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Upload outcomes reported to the observer.
const (
	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Directories lists the subdirectories uploads may be stored in.
var Directories = []string{"places", "accommodations", "transports", "cities", "countries", "users"}

var dirNamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// storedNamePattern matches names produced by GenerateName for an accepted extension.
var storedNamePattern = regexp.MustCompile(`^(?:[a-z0-9_-]+-)?[0-9]+-[0-9a-f]{8}\.(?:jpg|jpeg|png|gif|webp)$`)

// File is an uploaded file held in memory.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size returns the content length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Content))
}

// Result is the outcome of Save.
type Result struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename,omitempty"`
	AbsolutePath string `json:"-"`
	PublicPath   string `json:"path,omitempty"`
	Size         int64  `json:"size,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	Error        string `json:"error,omitempty"`

	// Err is the typed failure behind Error.
	Err error `json:"-"`
}

// Observer is notified of every Save outcome.
type Observer func(dir, outcome string)

// Uploader validates and stores images below a base directory.
type Uploader struct {
	baseDir      string
	publicPrefix string
	maxSize      int64
	observer     Observer
	now          func() time.Time
}

// NewUploader creates an uploader from the upload settings. The base
// directory is resolved to an absolute path but not created.
func NewUploader(cfg *config.UploadSettings) (*Uploader, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = constants.DefaultUploadBaseDir
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, &DirectoryError{Dir: baseDir, Err: err}
	}

	prefix := cfg.PublicPrefix
	if prefix == "" {
		prefix = constants.DefaultUploadPublicPrefix
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = constants.DefaultUploadMaxSize
	}

	return &Uploader{
		baseDir:      abs,
		publicPrefix: "/" + strings.Trim(prefix, "/"),
		maxSize:      maxSize,
		now:          time.Now,
	}, nil
}

// SetObserver registers a callback for upload outcomes.
func (u *Uploader) SetObserver(observer Observer) {
	u.observer = observer
}

// BaseDir returns the absolute uploads directory.
func (u *Uploader) BaseDir() string {
	return u.baseDir
}

// PublicPrefix returns the URL prefix files are served under.
func (u *Uploader) PublicPrefix() string {
	return u.publicPrefix
}

// MaxSize returns the size ceiling in bytes.
func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

// IsAllowedDir reports whether dir is one of the known upload subdirectories.
func IsAllowedDir(dir string) bool {
	return utils.ContainsString(Directories, dir)
}

// IsStoredPath reports whether p is a public path Save could have returned
// for dir: "<prefix>/<dir>/<generated name>" with nothing else in between.
func (u *Uploader) IsStoredPath(p, dir string) bool {
	if !IsAllowedDir(dir) {
		return false
	}
	name, ok := strings.CutPrefix(p, u.publicPrefix+"/"+dir+"/")
	return ok && storedNamePattern.MatchString(name)
}

// DetectMimeType returns the declared type without parameters, or the
// sniffed type when none or a generic one was declared.
func DetectMimeType(f File) string {
	declared := strings.TrimSpace(f.ContentType)
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mediaType
		}
	}
	if declared == "" || declared == constants.ContentTypeOctetStream {
		mediaType, _, _ := mime.ParseMediaType(mimetype.Detect(f.Content).String())
		return mediaType
	}
	return strings.ToLower(declared)
}

// Validate checks the MIME type, the extension and the size independently.
// Each failure is a ValidationError naming the specific reason.
func (u *Uploader) Validate(f File) error {
	mimeType := DetectMimeType(f)
	if !allowedMimeTypes[mimeType] {
		return utils.NewValidationError("file", fmt.Sprintf("File type %q is not allowed; use JPEG, PNG, GIF or WebP", mimeType))
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !allowedExtensions[ext] {
		return utils.NewValidationError("file", fmt.Sprintf("File extension %q is not allowed", ext))
	}

	if f.Size() == 0 {
		return utils.NewValidationError("file", "File is empty")
	}
	if f.Size() > u.maxSize {
		return utils.NewValidationError("file", fmt.Sprintf("File exceeds the maximum size of %d bytes", u.maxSize))
	}

	return nil
}

// EnsureDir creates the base directory and the named subdirectory and
// verifies that files can be written there. It returns the absolute path.
func (u *Uploader) EnsureDir(dir string) (string, error) {
	if !dirNamePattern.MatchString(dir) {
		return "", utils.NewValidationError("dir", fmt.Sprintf("Invalid upload directory %q", dir))
	}

	target := filepath.Join(u.baseDir, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", &DirectoryError{Dir: target, Err: err}
	}

	probe := filepath.Join(target, ".write-probe-"+uuid.NewString())
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return "", &DirectoryError{Dir: target, Err: err}
	}
	if err := os.Remove(probe); err != nil {
		return "", &DirectoryError{Dir: target, Err: err}
	}

	return target, nil
}

// GenerateName builds "<prefix>-<unix ms>-<8 random chars><ext>". The prefix
// is optional and the extension is lower-cased.
func (u *Uploader) GenerateName(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%d-%s%s", u.now().UnixMilli(), id, ext)

	prefix = strings.Trim(prefix, "-")
	if prefix != "" && dirNamePattern.MatchString(prefix) {
		name = prefix + "-" + name
	}
	return name
}

// Save validates f and writes it into dir. Rejected files never reach the filesystem.
func (u *Uploader) Save(dir, prefix string, f File) Result {
	if err := u.Validate(f); err != nil {
		log.Info().Str("dir", dir).Str("filename", f.Filename).Err(err).Msg("Upload rejected")
		return u.fail(dir, OutcomeRejected, err)
	}

	target, err := u.EnsureDir(dir)
	if err != nil {
		outcome := OutcomeFailed
		if utils.IsValidationError(err) {
			outcome = OutcomeRejected
		}
		log.Error().Err(err).Str("dir", dir).Msg("Upload directory unavailable")
		return u.fail(dir, outcome, err)
	}

	name := u.GenerateName(prefix, f.Filename)
	absPath := filepath.Join(target, name)
	if err := writeAtomic(absPath, f.Content); err != nil {
		log.Error().Err(err).Str("path", absPath).Msg("Failed to write upload")
		return u.fail(dir, OutcomeFailed, err)
	}

	mimeType := DetectMimeType(f)
	log.Info().
		Str("dir", dir).
		Str("filename", name).
		Int64("size", f.Size()).
		Str("mime_type", mimeType).
		Msg("Upload stored")
	u.observe(dir, OutcomeStored)

	return Result{
		Success:      true,
		Filename:     name,
		AbsolutePath: absPath,
		PublicPath:   path.Join(u.publicPrefix, dir, name),
		Size:         f.Size(),
		MimeType:     mimeType,
	}
}

// Delete removes the file at a public or absolute path. A missing file is
// not an error. Paths outside the uploads directory are rejected.
func (u *Uploader) Delete(p string) error {
	abs, err := u.Resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &WriteError{Path: abs, Err: err}
	}
	log.Debug().Str("path", abs).Msg("Upload deleted")
	return nil
}

// Resolve maps a public path ("/uploads/places/x.png") or an absolute path
// to an absolute filesystem path inside the uploads directory.
func (u *Uploader) Resolve(p string) (string, error) {
	var abs string
	switch {
	case strings.HasPrefix(p, u.publicPrefix+"/"):
		rel := strings.TrimPrefix(p, u.publicPrefix+"/")
		abs = filepath.Join(u.baseDir, filepath.FromSlash(rel))
	case filepath.IsAbs(p):
		abs = filepath.Clean(p)
	default:
		return "", utils.NewValidationError("path", "Path is not an upload path")
	}

	rel, err := filepath.Rel(u.baseDir, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", utils.NewValidationError("path", "Path is outside the uploads directory")
	}
	return abs, nil
}

func (u *Uploader) fail(dir, outcome string, err error) Result {
	u.observe(dir, outcome)
	msg := constants.MsgStorageFailure
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	return Result{Success: false, Error: msg, Err: err}
}

func (u *Uploader) observe(dir, outcome string) {
	if u.observer != nil {
		u.observer(dir, outcome)
	}
}

// writeAtomic writes data to a temporary file next to dst and renames it
// into place, so readers never see a partial file.
func writeAtomic(dst string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*.tmp")
	if err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: dst, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: dst, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	return nil
}
