package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngoctranq/linkvault/internal/domain/media"
)

type GetMediaUseCase struct {
	mediaRepo media.Repository
}

func NewGetMediaUseCase(r media.Repository) *GetMediaUseCase {
	return &GetMediaUseCase{mediaRepo: r}
}

type GetMediaInput struct {
	MediaID uuid.UUID
}

type GetMediaOutput struct {
	Item *media.Item
}

func (uc *GetMediaUseCase) Execute(ctx context.Context, input GetMediaInput) (*GetMediaOutput, error) {
	item, err := uc.mediaRepo.FindByID(ctx, input.MediaID)
	if err != nil {
		return nil, err
	}
	return &GetMediaOutput{Item: item}, nil
}
