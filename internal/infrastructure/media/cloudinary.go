// Package media builds Cloudinary delivery URLs for stored deliverables.
//
// Only URL construction happens here; the upload pipeline that populates the
// storage references lives outside this service.
package media

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

const baseURL = "https://res.cloudinary.com"

// Transformation strings per rendition. Aerial orthomosaics keep near-full
// quality even when optimized, model renditions serve the square preview
// image uploaded alongside the model file.
const (
	transformThumbnail    = "c_fill,w_300,h_200,q_auto,f_auto"
	transformPreview      = "c_fit,w_800,h_600,q_auto,f_auto"
	transformOptimized    = "c_fit,w_1920,h_1080,q_auto,f_auto"
	transformOrthomosaic  = "q_90,f_auto"
	transformModelPreview = "c_fill,w_400,h_400,q_auto,f_auto"
	transformVideo        = "q_auto,f_auto"
)

// CloudinaryStorage implements ports.MediaStorage against a Cloudinary cloud.
type CloudinaryStorage struct {
	cloudName string
	apiSecret string
	now       func() time.Time
}

// NewCloudinaryStorage returns a CloudinaryStorage for the given cloud.
func NewCloudinaryStorage(cloudName, apiSecret string) *CloudinaryStorage {
	return &CloudinaryStorage{cloudName: cloudName, apiSecret: apiSecret, now: time.Now}
}

// SignedDownloadURL returns the original-quality delivery URL carrying a
// token that the CDN rejects after ttl. The token covers the expiry and the
// resource path, so neither can be swapped without invalidating the HMAC.
func (s *CloudinaryStorage) SignedDownloadURL(storageRef string, t domain.DeliverableType, ttl time.Duration) (string, error) {
	if storageRef == "" {
		return "", fmt.Errorf("empty storage reference")
	}

	path := s.resourcePath(storageRef, t, ports.SizeOriginal)
	exp := s.now().Add(ttl).Unix()

	mac := hmac.New(sha256.New, []byte(s.apiSecret))
	fmt.Fprintf(mac, "exp=%d~%s", exp, path)
	token := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("%s%s?__cld_token__=exp=%d~hmac=%s", baseURL, path, exp, token), nil
}

// TransformURL returns an unsigned rendition URL for the given size class.
func (s *CloudinaryStorage) TransformURL(storageRef string, t domain.DeliverableType, size ports.SizeClass) string {
	if storageRef == "" {
		return ""
	}
	return baseURL + s.resourcePath(storageRef, t, size)
}

func (s *CloudinaryStorage) resourcePath(storageRef string, t domain.DeliverableType, size ports.SizeClass) string {
	resource, transform := renditionFor(t, size)
	if transform == "" {
		return fmt.Sprintf("/%s/%s/upload/%s", s.cloudName, resource, storageRef)
	}
	return fmt.Sprintf("/%s/%s/upload/%s/%s", s.cloudName, resource, transform, storageRef)
}

// renditionFor maps a deliverable type and size class to a Cloudinary resource
// type and transformation string. Reports and original model files are raw
// resources and never transformed.
func renditionFor(t domain.DeliverableType, size ports.SizeClass) (resource, transform string) {
	switch t {
	case domain.TypeVideo:
		if size == ports.SizeOriginal {
			return "video", ""
		}
		return "video", transformVideo
	case domain.TypeReport:
		return "raw", ""
	case domain.TypeModel:
		if size == ports.SizeOriginal {
			return "raw", ""
		}
		return "image", transformModelPreview
	case domain.TypeMap:
		switch size {
		case ports.SizeThumbnail:
			return "image", transformThumbnail
		case ports.SizePreview:
			return "image", transformPreview
		case ports.SizeOptimized:
			return "image", transformOrthomosaic
		default:
			return "image", ""
		}
	default: // images and anything unclassified
		switch size {
		case ports.SizeThumbnail:
			return "image", transformThumbnail
		case ports.SizePreview:
			return "image", transformPreview
		case ports.SizeOptimized:
			return "image", transformOptimized
		default:
			return "image", ""
		}
	}
}
