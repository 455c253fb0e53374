package media

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformGeneric Platform = "generic"
)

type Type string

const (
	TypeVideo   Type = "video"
	TypeArticle Type = "article"
	TypeAudio   Type = "audio"
	TypeUnknown Type = "unknown"
)

type ExtractionStatus string

const (
	StatusPending   ExtractionStatus = "pending"
	StatusCompleted ExtractionStatus = "completed"
	StatusFailed    ExtractionStatus = "failed"
)

// Item is a registered media link. The normalized URL is unique across all
// items; everything else (title, description, thumbnail, duration) stays
// empty until a metadata extraction worker fills it in. Items are immutable
// through the public API once created.
type Item struct {
	ID               uuid.UUID        `json:"id"`
	URL              string           `json:"url"`
	NormalizedURL    string           `json:"normalizedUrl"`
	Platform         Platform         `json:"platform"`
	Type             Type             `json:"type"`
	ExtractionStatus ExtractionStatus `json:"extractionStatus"`
	ExtractionError  *string          `json:"extractionError,omitempty"`
	Title            *string          `json:"title"`
	Description      *string          `json:"description"`
	ThumbnailURL     *string          `json:"thumbnail"`
	DurationSeconds  *int             `json:"duration"`
	Tags             []string         `json:"tags"`
	Metadata         map[string]any   `json:"metadata"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Filter narrows list and search results. Nil fields match everything.
type Filter struct {
	Platform *Platform
	Type     *Type
	Status   *ExtractionStatus
}

type Repository interface {
	// Save inserts a new item. A duplicate normalized URL must surface as
	// a conflict error the caller can recognize with errors.Is.
	Save(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByNormalizedURL(ctx context.Context, normalizedURL string) (*Item, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]*Item, int64, error)
	Search(ctx context.Context, query string, f Filter, limit, offset int) ([]*Item, int64, error)
}
