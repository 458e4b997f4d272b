package ports

import (
	"time"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// SizeClass selects which rendition of a deliverable a URL should serve. The
// core only chooses the class; transformation parameters live in the media
// storage collaborator.
type SizeClass string

const (
	SizeThumbnail SizeClass = "thumbnail"
	SizePreview   SizeClass = "preview"
	SizeOptimized SizeClass = "optimized"
	SizeOriginal  SizeClass = "original"
)

// MediaStorage is the narrow interface onto the media CDN (Cloudinary in
// production). Implementations build URLs locally; no network I/O.
type MediaStorage interface {
	// SignedDownloadURL returns a retrieval URL that stops working after ttl.
	SignedDownloadURL(storageRef string, t domain.DeliverableType, ttl time.Duration) (string, error)
	// TransformURL returns a rendition URL for the given type and size class.
	TransformURL(storageRef string, t domain.DeliverableType, size SizeClass) string
}
