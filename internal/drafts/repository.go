package drafts

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DraftRepository stores cached drafts.
type DraftRepository interface {
	Create(ctx context.Context, draft *Draft) (*Draft, error)
	Update(ctx context.Context, draft *Draft) (*Draft, error)
	GetByKey(ctx context.Context, key string) (*Draft, error)
	List(ctx context.Context) ([]*Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewDraftRepository creates a bun repository for draft records.
func NewDraftRepository(db *bun.DB) repository.Repository[*Draft] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Draft]{
		NewRecord: func() *Draft { return &Draft{} },
		GetID: func(draft *Draft) uuid.UUID {
			return draft.ID
		},
		SetID: func(draft *Draft, id uuid.UUID) {
			draft.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(draft *Draft) string {
			return draft.Key
		},
	})
}
