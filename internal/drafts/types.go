package drafts

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Draft is a locally cached snapshot of in-progress edits, keyed by layout
// and instance. It is a convenience cache, never authoritative: the backend
// copy always wins once a save succeeds.
type Draft struct {
	bun.BaseModel `bun:"table:layout_drafts,alias:d"`

	ID         uuid.UUID                     `bun:",pk,type:uuid" json:"id"`
	Key        string                        `bun:"key,notnull,unique" json:"key"`
	LayoutID   string                        `bun:"layout_id,notnull" json:"layout_id"`
	InstanceID string                        `bun:"instance_id" json:"instance_id,omitempty"`
	Content    map[string]schema.FieldValues `bun:"content,type:jsonb" json:"content"`
	SavedAt    time.Time                     `bun:"saved_at,nullzero,default:current_timestamp" json:"saved_at"`
}

// DraftKey builds the stable cache key namespaced by layout and instance.
func DraftKey(layoutID, instanceID string) string {
	layoutID = strings.TrimSpace(layoutID)
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return fmt.Sprintf("layout:%s", layoutID)
	}
	return fmt.Sprintf("layout:%s:instance:%s", layoutID, instanceID)
}

// NotFoundError reports a missing draft record.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("drafts: draft %q not found", e.Key)
}

func cloneDraft(d *Draft) *Draft {
	if d == nil {
		return nil
	}
	cloned := *d
	if d.Content != nil {
		content := make(map[string]schema.FieldValues, len(d.Content))
		for componentID, vals := range d.Content {
			content[componentID] = schema.CloneValues(vals)
		}
		cloned.Content = content
	}
	return &cloned
}
