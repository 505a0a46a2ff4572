package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-layout-editor/internal/identity"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

// ErrRepositoryRequired reports a nil repository.
var ErrRepositoryRequired = errors.New("drafts: repository is required")

// Service caches editing snapshots so a crashed or abandoned session can be
// offered back to the author. Entries expire after the configured TTL.
type Service struct {
	repo   DraftRepository
	ttl    time.Duration
	now    func() time.Time
	logger interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock injects the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithTTL bounds how long a cached draft stays loadable. Zero disables
// expiry.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the draft cache service.
func NewService(repo DraftRepository, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &Service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save upserts the snapshot for a layout/instance pair.
func (s *Service) Save(ctx context.Context, layoutID, instanceID string, content map[string]schema.FieldValues) error {
	key := DraftKey(layoutID, instanceID)
	draft := &Draft{
		ID:         identity.DraftUUID(layoutID, instanceID),
		Key:        key,
		LayoutID:   layoutID,
		InstanceID: instanceID,
		Content:    content,
		SavedAt:    s.now(),
	}

	if _, err := s.repo.GetByKey(ctx, key); err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			_, err = s.repo.Create(ctx, draft)
			return err
		}
		return err
	}
	_, err := s.repo.Update(ctx, draft)
	return err
}

// Load returns the cached snapshot, reporting false when no usable draft
// exists. Expired drafts are dropped on read.
func (s *Service) Load(ctx context.Context, layoutID, instanceID string) (map[string]schema.FieldValues, bool, error) {
	key := DraftKey(layoutID, instanceID)
	draft, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if s.ttl > 0 && s.now().Sub(draft.SavedAt) > s.ttl {
		s.logger.Debug("drafts.expired", "key", key)
		_ = s.repo.Delete(ctx, draft.ID)
		return nil, false, nil
	}
	return draft.Content, true, nil
}

// Discard removes the cached snapshot, used after a successful save or an
// explicit discard decision.
func (s *Service) Discard(ctx context.Context, layoutID, instanceID string) error {
	draft, err := s.repo.GetByKey(ctx, DraftKey(layoutID, instanceID))
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return s.repo.Delete(ctx, draft.ID)
}

// Prune deletes every expired draft.
func (s *Service) Prune(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for _, record := range records {
		if record.SavedAt.After(cutoff) {
			continue
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
