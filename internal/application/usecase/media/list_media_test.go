package media

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoctranq/linkvault/internal/domain/media"
)

func seedItems(t *testing.T, repo *memoryMediaRepo, n int, platform media.Platform) []*media.Item {
	t.Helper()
	items := make([]*media.Item, 0, n)
	base := time.Now().UTC()
	for i := 0; i < n; i++ {
		item := &media.Item{
			ID:               uuid.New(),
			URL:              fmt.Sprintf("https://example.com/%s/%d", platform, i),
			NormalizedURL:    fmt.Sprintf("https://example.com/%s/%d", platform, i),
			Platform:         platform,
			Type:             media.TypeUnknown,
			ExtractionStatus: media.StatusPending,
			Tags:             []string{},
			Metadata:         map[string]any{},
			CreatedAt:        base.Add(time.Duration(i) * time.Second),
			UpdatedAt:        base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Save(context.Background(), item))
		items = append(items, item)
	}
	return items
}

func TestListMedia_NewestFirst(t *testing.T) {
	repo := newMemoryMediaRepo()
	seeded := seedItems(t, repo, 5, media.PlatformGeneric)
	uc := NewListMediaUseCase(repo)

	out, err := uc.Execute(context.Background(), ListMediaInput{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.Len(t, out.Items, 5)
	assert.Equal(t, int64(5), out.Total)
	// Last seeded has the newest CreatedAt.
	assert.Equal(t, seeded[4].ID, out.Items[0].ID)
	assert.Equal(t, seeded[0].ID, out.Items[4].ID)
}

func TestListMedia_ClampsPaging(t *testing.T) {
	repo := newMemoryMediaRepo()
	uc := NewListMediaUseCase(repo)
	ctx := context.Background()

	out, err := uc.Execute(ctx, ListMediaInput{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, MaxPageLimit, out.Limit)

	out, err = uc.Execute(ctx, ListMediaInput{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, DefaultPageLimit, out.Limit)
}

func TestListMedia_PlatformFilter(t *testing.T) {
	repo := newMemoryMediaRepo()
	seedItems(t, repo, 3, media.PlatformGeneric)
	seedItems(t, repo, 2, media.PlatformYouTube)
	uc := NewListMediaUseCase(repo)

	platform := media.PlatformYouTube
	out, err := uc.Execute(context.Background(), ListMediaInput{
		Filter: media.Filter{Platform: &platform},
		Page:   1,
		Limit:  20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Total)
	for _, item := range out.Items {
		assert.Equal(t, media.PlatformYouTube, item.Platform)
	}
}

func TestListMedia_SecondPage(t *testing.T) {
	repo := newMemoryMediaRepo()
	seedItems(t, repo, 7, media.PlatformGeneric)
	uc := NewListMediaUseCase(repo)

	out, err := uc.Execute(context.Background(), ListMediaInput{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(7), out.Total)
	assert.Equal(t, 2, out.Page)
}

func TestSearchMedia_EmptyQueryFallsBackToList(t *testing.T) {
	repo := newMemoryMediaRepo()
	seedItems(t, repo, 3, media.PlatformGeneric)
	uc := NewSearchMediaUseCase(repo)

	out, err := uc.Execute(context.Background(), SearchMediaInput{Query: "   ", Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Total)
	assert.Empty(t, out.Query)
}

func TestSearchMedia_MatchesQuery(t *testing.T) {
	repo := newMemoryMediaRepo()
	seedItems(t, repo, 3, media.PlatformGeneric)
	seedItems(t, repo, 2, media.PlatformYouTube)
	uc := NewSearchMediaUseCase(repo)

	out, err := uc.Execute(context.Background(), SearchMediaInput{Query: "youtube", Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Total)
	assert.Equal(t, "youtube", out.Query)
}
