package media

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoctranq/linkvault/internal/domain/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
)

func TestPreviewMedia(t *testing.T) {
	uc := NewPreviewMediaUseCase()

	out, err := uc.Execute(context.Background(), PreviewMediaInput{
		URL: "https://youtu.be/dQw4w9WgXcQ?si=junk",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ?si=junk", out.URL)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", out.NormalizedURL)
	assert.Equal(t, media.PlatformYouTube, out.Platform)
	assert.Equal(t, media.StatusPending, out.ExtractionStatus)
}

func TestPreviewMedia_InvalidURL(t *testing.T) {
	uc := NewPreviewMediaUseCase()

	_, err := uc.Execute(context.Background(), PreviewMediaInput{URL: "data:text/html,x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGetMedia(t *testing.T) {
	repo := newMemoryMediaRepo()
	seeded := seedItems(t, repo, 1, media.PlatformGeneric)
	uc := NewGetMediaUseCase(repo)

	out, err := uc.Execute(context.Background(), GetMediaInput{MediaID: seeded[0].ID})
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID, out.Item.ID)

	_, err = uc.Execute(context.Background(), GetMediaInput{MediaID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
