package domain

import "time"

// DeliverableType classifies a stored file.
type DeliverableType string

const (
	TypeImage  DeliverableType = "image"
	TypeMap    DeliverableType = "map"
	TypeModel  DeliverableType = "model"
	TypeVideo  DeliverableType = "video"
	TypeReport DeliverableType = "report"
)

// Group returns the plural access-policy key for the type.
func (t DeliverableType) Group() string {
	switch t {
	case TypeImage:
		return "images"
	case TypeMap:
		return "maps"
	case TypeModel:
		return "models"
	case TypeVideo:
		return "videos"
	case TypeReport:
		return "reports"
	default:
		return ""
	}
}

// Deliverable is a stored file associated with a project. The storage reference
// is an opaque handle into the media-storage collaborator (a Cloudinary public
// ID in production). The download counter is incremented only by the access
// controller, exactly once per granted download.
type Deliverable struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	ProjectID        string          `json:"project_id" bson:"project_id"`
	Type             DeliverableType `json:"type" bson:"type"`
	Category         string          `json:"category" bson:"category"`
	Filename         string          `json:"filename" bson:"filename"`
	OriginalFilename string          `json:"original_filename" bson:"original_filename"`
	StorageRef       string          `json:"-" bson:"storage_ref"`
	SecureURL        string          `json:"-" bson:"secure_url"`
	FileSize         int64           `json:"file_size" bson:"file_size"`
	MimeType         string          `json:"mime_type" bson:"mime_type"`
	Description      string          `json:"description,omitempty" bson:"description,omitempty"`
	DownloadCount    int64           `json:"download_count" bson:"download_count"`
	UploadedAt       time.Time       `json:"uploaded_at" bson:"uploaded_at"`
}

// AccessLogEntry is an append-only audit record of a deliverable access.
// Entries are never mutated or deleted.
type AccessLogEntry struct {
	ClientID      string    `bson:"client_id"`
	ProjectID     string    `bson:"project_id"`
	DeliverableID string    `bson:"deliverable_id"`
	AccessType    string    `bson:"access_type"`
	IPAddress     string    `bson:"ip_address,omitempty"`
	UserAgent     string    `bson:"user_agent,omitempty"`
	Timestamp     time.Time `bson:"timestamp"`
}

// TimelineEvent is a milestone shown on the client dashboard.
type TimelineEvent struct {
	ProjectID   string    `json:"project_id" bson:"project_id"`
	EventType   string    `json:"event_type" bson:"event_type"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	EventDate   time.Time `json:"event_date" bson:"event_date"`
}
