package media

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ngoctranq/linkvault/internal/domain/media"
)

type SearchMediaUseCase struct {
	mediaRepo media.Repository
}

func NewSearchMediaUseCase(r media.Repository) *SearchMediaUseCase {
	return &SearchMediaUseCase{mediaRepo: r}
}

type SearchMediaInput struct {
	Query  string
	Filter media.Filter
	Page   int
	Limit  int
}

type SearchMediaOutput struct {
	Items []*media.Item
	Total int64
	Page  int
	Limit int
	Query string
}

func (uc *SearchMediaUseCase) Execute(ctx context.Context, input SearchMediaInput) (*SearchMediaOutput, error) {

	ctx, span := tracer.Start(ctx, "SearchMedia")
	defer span.End()

	page, limit := clampPage(input.Page, input.Limit)
	offset := (page - 1) * limit
	query := strings.TrimSpace(input.Query)
	span.SetAttributes(attribute.String("query", query))

	var (
		items []*media.Item
		total int64
		err   error
	)
	if query == "" {
		// No query term: same contract as listing, newest first.
		items, total, err = uc.mediaRepo.List(ctx, input.Filter, limit, offset)
	} else {
		items, total, err = uc.mediaRepo.Search(ctx, query, input.Filter, limit, offset)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &SearchMediaOutput{Items: items, Total: total, Page: page, Limit: limit, Query: query}, nil
}
