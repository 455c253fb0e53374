package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngoctranq/linkvault/internal/domain/media"
)

type RegisterMediaRequest struct {
	URL string `json:"url" binding:"required"`
}

type MediaItemDTO struct {
	ID               string         `json:"id"`
	URL              string         `json:"url"`
	NormalizedURL    string         `json:"normalizedUrl"`
	Platform         string         `json:"platform"`
	Type             string         `json:"type"`
	ExtractionStatus string         `json:"extractionStatus"`
	ExtractionError  *string        `json:"extractionError,omitempty"`
	Title            *string        `json:"title"`
	Description      *string        `json:"description"`
	Thumbnail        *string        `json:"thumbnail"`
	Duration         *int           `json:"duration"`
	Tags             []string       `json:"tags"`
	Metadata         map[string]any `json:"metadata"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func ToMediaItemDTO(m *media.Item) MediaItemDTO {
	return MediaItemDTO{
		ID:               m.ID.String(),
		URL:              m.URL,
		NormalizedURL:    m.NormalizedURL,
		Platform:         string(m.Platform),
		Type:             string(m.Type),
		ExtractionStatus: string(m.ExtractionStatus),
		ExtractionError:  m.ExtractionError,
		Title:            m.Title,
		Description:      m.Description,
		Thumbnail:        m.ThumbnailURL,
		Duration:         m.DurationSeconds,
		Tags:             m.Tags,
		Metadata:         m.Metadata,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toMediaItemDTOs(items []*media.Item) []MediaItemDTO {
	dtos := make([]MediaItemDTO, len(items))
	for i, m := range items {
		dtos[i] = ToMediaItemDTO(m)
	}
	return dtos
}

type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func NewPaginationDTO(page, limit int, total int64) PaginationDTO {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationDTO{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

type MediaListResponse struct {
	Media      []MediaItemDTO `json:"media"`
	Pagination PaginationDTO  `json:"pagination"`
}

type MediaSearchResponse struct {
	Media      []MediaItemDTO `json:"media"`
	Pagination PaginationDTO  `json:"pagination"`
	Query      string         `json:"query"`
}

type MediaPreviewDTO struct {
	URL              string `json:"url"`
	NormalizedURL    string `json:"normalizedUrl"`
	Platform         string `json:"platform"`
	ExtractionStatus string `json:"extractionStatus"`
}

// parseMediaFilter reads the optional platform/type/status query params.
// Unknown enum values are rejected rather than silently matching nothing.
func parseMediaFilter(c *gin.Context) (media.Filter, error) {
	var f media.Filter

	if v := c.Query("platform"); v != "" {
		p := media.Platform(v)
		if p != media.PlatformYouTube && p != media.PlatformGeneric {
			return f, fmt.Errorf("unknown platform %q", v)
		}
		f.Platform = &p
	}
	if v := c.Query("type"); v != "" {
		t := media.Type(v)
		switch t {
		case media.TypeVideo, media.TypeArticle, media.TypeAudio, media.TypeUnknown:
			f.Type = &t
		default:
			return f, fmt.Errorf("unknown media type %q", v)
		}
	}
	if v := c.Query("status"); v != "" {
		s := media.ExtractionStatus(v)
		switch s {
		case media.StatusPending, media.StatusCompleted, media.StatusFailed:
			f.Status = &s
		default:
			return f, fmt.Errorf("unknown extraction status %q", v)
		}
	}
	return f, nil
}
