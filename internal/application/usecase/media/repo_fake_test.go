package media

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ngoctranq/linkvault/internal/domain/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
)

// memoryMediaRepo is a test double that behaves like the Postgres repo,
// including the unique constraint on the normalized URL.
type memoryMediaRepo struct {
	mu           sync.Mutex
	byNormalized map[string]*media.Item
	byID         map[uuid.UUID]*media.Item
}

func newMemoryMediaRepo() *memoryMediaRepo {
	return &memoryMediaRepo{
		byNormalized: make(map[string]*media.Item),
		byID:         make(map[uuid.UUID]*media.Item),
	}
}

func (r *memoryMediaRepo) Save(_ context.Context, item *media.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNormalized[item.NormalizedURL]; exists {
		return apperror.NewConflict("media item", "normalized_url", item.NormalizedURL)
	}
	cp := *item
	r.byNormalized[item.NormalizedURL] = &cp
	r.byID[item.ID] = &cp
	return nil
}

func (r *memoryMediaRepo) FindByID(_ context.Context, id uuid.UUID) (*media.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("media item", id.String())
	}
	cp := *item
	return &cp, nil
}

func (r *memoryMediaRepo) FindByNormalizedURL(_ context.Context, normalizedURL string) (*media.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byNormalized[normalizedURL]
	if !ok {
		return nil, apperror.NewNotFound("media item", normalizedURL)
	}
	cp := *item
	return &cp, nil
}

func (r *memoryMediaRepo) matching(f media.Filter) []*media.Item {
	items := make([]*media.Item, 0, len(r.byID))
	for _, item := range r.byID {
		if f.Platform != nil && item.Platform != *f.Platform {
			continue
		}
		if f.Type != nil && item.Type != *f.Type {
			continue
		}
		if f.Status != nil && item.ExtractionStatus != *f.Status {
			continue
		}
		cp := *item
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func pageOf(items []*media.Item, limit, offset int) []*media.Item {
	if offset >= len(items) {
		return []*media.Item{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *memoryMediaRepo) List(_ context.Context, f media.Filter, limit, offset int) ([]*media.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.matching(f)
	return pageOf(items, limit, offset), int64(len(items)), nil
}

func (r *memoryMediaRepo) Search(_ context.Context, query string, f media.Filter, limit, offset int) ([]*media.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(f)
	items := make([]*media.Item, 0, len(all))
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.URL), strings.ToLower(query)) {
			items = append(items, item)
		}
	}
	return pageOf(items, limit, offset), int64(len(items)), nil
}

func (r *memoryMediaRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byNormalized)
}
