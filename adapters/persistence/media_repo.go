package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ngoctranq/linkvault/internal/domain/media"
	"github.com/ngoctranq/linkvault/pkg/apperror"
)

type postgresMediaRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMediaRepo(db *pgxpool.Pool) media.Repository {
	return &postgresMediaRepo{db: db}
}

var psqlMedia = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// The ts column is a generated tsvector and never read back directly, so
// every query names its columns instead of selecting *.
const mediaItemColumns = `id, url, normalized_url, platform, media_type, extraction_status,
	extraction_error, title, description, thumbnail_url, duration_seconds,
	tags, metadata, created_at, updated_at`

func scanMediaItem(row pgx.Row) (*media.Item, error) {
	m := &media.Item{}
	var metadataBytes []byte

	err := row.Scan(
		&m.ID, &m.URL, &m.NormalizedURL, &m.Platform, &m.Type,
		&m.ExtractionStatus, &m.ExtractionError, &m.Title, &m.Description,
		&m.ThumbnailURL, &m.DurationSeconds, &m.Tags, &metadataBytes,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("media item", "")
		}
		return nil, apperror.NewInternal("failed to scan media item row", err)
	}

	if m.Tags == nil {
		m.Tags = []string{}
	}
	if err := json.Unmarshal(metadataBytes, &m.Metadata); err != nil || m.Metadata == nil {
		m.Metadata = map[string]any{}
	}
	return m, nil
}

func scanMediaItems(rows pgx.Rows) ([]*media.Item, error) {
	defer rows.Close()
	items := make([]*media.Item, 0)
	for rows.Next() {
		m, err := scanMediaItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating media item rows", err)
	}
	return items, nil
}

func isNormalizedURLViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" &&
		pgErr.ConstraintName == "media_items_normalized_url_key"
}

func (r *postgresMediaRepo) Save(ctx context.Context, m *media.Item) error {
	metadataBytes, err := json.Marshal(m.Metadata)
	if err != nil {
		return apperror.NewInternal("failed to marshal media item metadata", err)
	}

	query := `
		INSERT INTO media_items (id, url, normalized_url, platform, media_type, extraction_status,
			extraction_error, title, description, thumbnail_url, duration_seconds,
			tags, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.Exec(ctx, query,
		m.ID, m.URL, m.NormalizedURL, m.Platform, m.Type, m.ExtractionStatus,
		m.ExtractionError, m.Title, m.Description, m.ThumbnailURL, m.DurationSeconds,
		m.Tags, metadataBytes, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isNormalizedURLViolation(err) {
			return apperror.NewConflict("media item", "normalized_url", m.NormalizedURL)
		}
		return apperror.NewInternal("failed to insert media item", err)
	}
	return nil
}

func (r *postgresMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*media.Item, error) {
	query := `SELECT ` + mediaItemColumns + ` FROM media_items WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	item, err := scanMediaItem(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("media item", id.String())
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresMediaRepo) FindByNormalizedURL(ctx context.Context, normalizedURL string) (*media.Item, error) {
	query := `SELECT ` + mediaItemColumns + ` FROM media_items WHERE normalized_url = $1`
	row := r.db.QueryRow(ctx, query, normalizedURL)
	item, err := scanMediaItem(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("media item", normalizedURL)
		}
		return nil, err
	}
	return item, nil
}

func applyMediaFilter(builder sq.SelectBuilder, f media.Filter) sq.SelectBuilder {
	if f.Platform != nil {
		builder = builder.Where(sq.Eq{"platform": *f.Platform})
	}
	if f.Type != nil {
		builder = builder.Where(sq.Eq{"media_type": *f.Type})
	}
	if f.Status != nil {
		builder = builder.Where(sq.Eq{"extraction_status": *f.Status})
	}
	return builder
}

func (r *postgresMediaRepo) count(ctx context.Context, builder sq.SelectBuilder) (int64, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build media count query", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, apperror.NewInternal("failed to count media items", err)
	}
	return total, nil
}

func (r *postgresMediaRepo) List(ctx context.Context, f media.Filter, limit, offset int) ([]*media.Item, int64, error) {
	builder := applyMediaFilter(psqlMedia.Select(mediaItemColumns).From("media_items"), f).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build list media query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to query media items", err)
	}
	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, applyMediaFilter(psqlMedia.Select("COUNT(*)").From("media_items"), f))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches the query against the stored tsvector and orders by
// ts_rank_cd, newest first among equal ranks. Empty queries are handled
// upstream by falling back to List.
func (r *postgresMediaRepo) Search(ctx context.Context, query string, f media.Filter, limit, offset int) ([]*media.Item, int64, error) {
	match := sq.Expr("ts @@ plainto_tsquery('simple', ?)", query)

	builder := applyMediaFilter(psqlMedia.Select(mediaItemColumns).From("media_items"), f).
		Where(match).
		OrderByClause("ts_rank_cd(ts, plainto_tsquery('simple', ?)) DESC, created_at DESC", query).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build search media query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to search media items", err)
	}
	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx,
		applyMediaFilter(psqlMedia.Select("COUNT(*)").From("media_items"), f).Where(match))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
