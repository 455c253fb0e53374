package media

import (
	"context"

	"github.com/ngoctranq/linkvault/internal/domain/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
	"github.com/ngoctranq/linkvault/pkg/urlnorm"
)

// PreviewMediaUseCase runs the normalization pipeline without persisting
// anything, so callers can inspect what registration would store.
type PreviewMediaUseCase struct{}

func NewPreviewMediaUseCase() *PreviewMediaUseCase {
	return &PreviewMediaUseCase{}
}

type PreviewMediaInput struct {
	URL string
}

type PreviewMediaOutput struct {
	URL              string
	NormalizedURL    string
	Platform         media.Platform
	ExtractionStatus media.ExtractionStatus
}

func (uc *PreviewMediaUseCase) Execute(_ context.Context, input PreviewMediaInput) (*PreviewMediaOutput, error) {
	if err := urlnorm.Validate(input.URL); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	normalized, err := urlnorm.Normalize(input.URL)
	if err != nil {
		return nil, apperror.NewInternal("url passed validation but failed to normalize", err)
	}

	return &PreviewMediaOutput{
		URL:              input.URL,
		NormalizedURL:    normalized,
		Platform:         media.Platform(urlnorm.Detect(input.URL)),
		ExtractionStatus: media.StatusPending,
	}, nil
}
