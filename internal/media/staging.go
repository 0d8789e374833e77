package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Staged is a multipart file written to the local staging directory.
type Staged struct {
	Path string
}

// Remove deletes the staged file. It is safe on a nil receiver.
func (s *Staged) Remove() {
	if s == nil || s.Path == "" {
		return
	}
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		middleware.Logger.Warn("Failed to remove staged upload",
			"path", s.Path,
			"error", err,
		)
	}
}

// Stager writes multipart uploads into Dir under generated names.
type Stager struct {
	Dir string
}

// NewStager ensures dir exists.
func NewStager(dir string) (*Stager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload staging dir: %w", err)
	}
	return &Stager{Dir: dir}, nil
}

// Stage saves the multipart field. A missing optional field returns
// (nil, nil); a missing required field is a validation error.
func (s *Stager) Stage(c *fiber.Ctx, field string, required bool) (*Staged, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		if required {
			return nil, models.NewValidationError(field + " file is required")
		}
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(s.Dir, uuid.NewString()+ext)
	if err := c.SaveFile(fh, path); err != nil {
		return nil, models.NewInternalErrorf("failed to stage "+field, err)
	}
	return &Staged{Path: path}, nil
}

// RemoveAll removes every staged file.
func RemoveAll(files ...*Staged) {
	for _, f := range files {
		f.Remove()
	}
}
