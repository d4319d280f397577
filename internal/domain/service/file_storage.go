package service

import (
	"context"
	"io"
)

// FileStorage stores uploaded binary assets (avatars, company logos,
// resumes) and returns a URL under which the asset is served.
type FileStorage interface {
	// Save writes the content under the given key and content type,
	// returning the public URL of the stored object.
	Save(ctx context.Context, key string, contentType string, content io.Reader) (string, error)

	// Delete removes the object stored under the given key. Deleting a
	// missing key is not an error.
	Delete(ctx context.Context, key string) error
}
