package media

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ngoctranq/linkvault/internal/domain/identity"
	"github.com/ngoctranq/linkvault/internal/domain/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
	"github.com/ngoctranq/linkvault/pkg/logger"
	"github.com/ngoctranq/linkvault/pkg/urlnorm"
)

// RegisterMediaUseCase is the idempotent registration protocol: validate,
// normalize, detect the platform, then create-or-return-existing keyed on
// the normalized URL. The database unique constraint is the arbiter when
// two callers race on the same URL; the loser recovers by rereading.
type RegisterMediaUseCase struct {
	mediaRepo media.Repository
	logger    logger.Logger
}

func NewRegisterMediaUseCase(r media.Repository, log logger.Logger) *RegisterMediaUseCase {
	return &RegisterMediaUseCase{mediaRepo: r, logger: log}
}

type RegisterMediaInput struct {
	URL    string
	Caller identity.Identity
}

type RegisterMediaOutput struct {
	Created bool
	Item    *media.Item
}

var tracer = otel.Tracer("media_usecase")

func (uc *RegisterMediaUseCase) Execute(ctx context.Context, input RegisterMediaInput) (*RegisterMediaOutput, error) {

	ctx, span := tracer.Start(ctx, "RegisterMedia")
	defer span.End()

	if err := urlnorm.Validate(input.URL); err != nil {
		err := apperror.NewInvalidInput(err.Error(), err)
		span.RecordError(err)
		return nil, err
	}

	normalized, err := urlnorm.Normalize(input.URL)
	if err != nil {
		err := apperror.NewInternal("url passed validation but failed to normalize", err)
		span.RecordError(err)
		return nil, err
	}
	platform := media.Platform(urlnorm.Detect(input.URL))
	span.SetAttributes(attribute.String("platform", string(platform)))

	existing, err := uc.mediaRepo.FindByNormalizedURL(ctx, normalized)
	if err == nil {
		span.SetAttributes(attribute.String("media_id", existing.ID.String()))
		return &RegisterMediaOutput{Created: false, Item: existing}, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now().UTC()
	item := &media.Item{
		ID:               uuid.New(),
		URL:              input.URL,
		NormalizedURL:    normalized,
		Platform:         platform,
		Type:             media.TypeUnknown,
		ExtractionStatus: media.StatusPending,
		Tags:             []string{},
		Metadata:         map[string]any{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.mediaRepo.Save(ctx, item); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the insert race; the winner's row is the answer.
			winner, ferr := uc.mediaRepo.FindByNormalizedURL(ctx, normalized)
			if ferr != nil {
				err := apperror.NewInternal("duplicate normalized url detected but existing item could not be loaded", ferr)
				span.RecordError(err)
				return nil, err
			}
			span.SetAttributes(attribute.String("media_id", winner.ID.String()))
			return &RegisterMediaOutput{Created: false, Item: winner}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("media_id", item.ID.String()))
	uc.logger.Info("registered media item",
		zap.String("media_id", item.ID.String()),
		zap.String("platform", string(item.Platform)),
		zap.String("caller_id", input.Caller.UserID.String()),
	)
	return &RegisterMediaOutput{Created: true, Item: item}, nil
}
