package drafts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunDraftRepository implements DraftRepository with optional caching.
type BunDraftRepository struct {
	repo repository.Repository[*Draft]
}

// NewBunDraftRepository creates a draft repository without caching.
func NewBunDraftRepository(db *bun.DB) *BunDraftRepository {
	return NewBunDraftRepositoryWithCache(db, nil, nil)
}

// NewBunDraftRepositoryWithCache creates a draft repository with caching support.
func NewBunDraftRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunDraftRepository {
	base := NewDraftRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunDraftRepository{repo: base}
}

func (r *BunDraftRepository) Create(ctx context.Context, draft *Draft) (*Draft, error) {
	return r.repo.Create(ctx, draft)
}

func (r *BunDraftRepository) Update(ctx context.Context, draft *Draft) (*Draft, error) {
	return r.repo.Update(ctx, draft,
		repository.UpdateByID(draft.ID.String()),
		repository.UpdateColumns("content", "saved_at"),
	)
}

func (r *BunDraftRepository) GetByKey(ctx context.Context, key string) (*Draft, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunDraftRepository) List(ctx context.Context) ([]*Draft, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Draft{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("draft repository error: %w", err)
}
