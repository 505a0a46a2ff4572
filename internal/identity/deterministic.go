package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DraftUUID keys a cached draft by layout and instance. An empty instance id
// addresses the layout-default draft.
func DraftUUID(layoutID, instanceID string) uuid.UUID {
	return UUID("layout-editor:draft:" + strings.TrimSpace(layoutID) + ":" + strings.TrimSpace(instanceID))
}

// ComponentUUID keys an authored component by its normalized name, used when
// the backend has not assigned an id yet.
func ComponentUUID(name string) uuid.UUID {
	return UUID("layout-editor:component:" + strings.ToLower(strings.TrimSpace(name)))
}
