// Package filestore abstracts blob storage behind a small interface so the
// backend (MinIO, S3, local disk) can be swapped per deployment. The
// encrypted-at-rest wrapper lives in the cryptowr subpackage.
package filestore

import (
	"context"
	"io"
	"time"
)

// Error codes shared by filestore implementations.
const (
	// CodeFileNotFound is returned when no file exists at the given path.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeUnsupportedContentType is returned when the file's content type
	// is rejected by the backend.
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"

	// CodeFileTooLarge is returned when the file exceeds the allowed size.
	CodeFileTooLarge = "FILE_TOO_LARGE"
)

// FileStore is the blob storage contract. Implementations must be safe for
// concurrent use.
type FileStore interface {
	// Upload stores the reader's content at path. Size and content type
	// are detected from the content.
	Upload(ctx context.Context, path string, reader io.Reader) (*FileInfo, error)

	// Get retrieves a file and its metadata. The caller closes
	// File.Content.
	Get(ctx context.Context, path string) (*File, error)

	// Delete removes the file at path.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is stored at path.
	Exists(ctx context.Context, path string) (bool, error)
}

// File is a stored file with its content stream and metadata.
type File struct {
	Content io.ReadCloser
	Info    FileInfo
}

// FileInfo is the metadata of a stored file.
type FileInfo struct {
	Path         string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}
