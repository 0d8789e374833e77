// Package mediatest provides an in-memory media.Uploader for tests.
package mediatest

import (
	"context"
	"fmt"
	"sync"

	"vidtube/internal/media"
)

// Fake records uploads and destroys. Set UploadErr or DestroyErr to make the
// corresponding calls fail.
type Fake struct {
	mu         sync.Mutex
	Uploaded   []string
	Destroyed  []string
	UploadErr  error
	DestroyErr error
	// FailOn makes Upload fail for this kind only.
	FailOn media.Kind
}

func (f *Fake) Provider() string { return "fake" }

func (f *Fake) Upload(_ context.Context, localPath string, kind media.Kind) (*media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil && (f.FailOn == "" || f.FailOn == kind) {
		return nil, f.UploadErr
	}
	f.Uploaded = append(f.Uploaded, localPath)
	id := fmt.Sprintf("%s-%d", kind, len(f.Uploaded))
	return &media.Asset{
		URL:      "https://media.test/" + id,
		PublicID: id,
		Kind:     kind,
	}, nil
}

func (f *Fake) Destroy(_ context.Context, publicID string, _ media.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DestroyErr != nil {
		return f.DestroyErr
	}
	f.Destroyed = append(f.Destroyed, publicID)
	return nil
}

// UploadCount returns the number of successful uploads.
func (f *Fake) UploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Uploaded)
}

// DestroyedIDs returns a copy of the destroyed public ids.
func (f *Fake) DestroyedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Destroyed...)
}
