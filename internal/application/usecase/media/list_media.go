package media

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ngoctranq/linkvault/internal/domain/media"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ListMediaUseCase struct {
	mediaRepo media.Repository
}

func NewListMediaUseCase(r media.Repository) *ListMediaUseCase {
	return &ListMediaUseCase{mediaRepo: r}
}

type ListMediaInput struct {
	Filter media.Filter
	Page   int
	Limit  int
}

type ListMediaOutput struct {
	Items []*media.Item
	Total int64
	Page  int
	Limit int
}

// clampPage normalizes paging input: pages start at 1, the limit defaults
// to DefaultPageLimit and is capped at MaxPageLimit.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func (uc *ListMediaUseCase) Execute(ctx context.Context, input ListMediaInput) (*ListMediaOutput, error) {

	ctx, span := tracer.Start(ctx, "ListMedia")
	defer span.End()

	page, limit := clampPage(input.Page, input.Limit)
	offset := (page - 1) * limit
	span.SetAttributes(attribute.Int("page", page), attribute.Int("limit", limit))

	items, total, err := uc.mediaRepo.List(ctx, input.Filter, limit, offset)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &ListMediaOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}
