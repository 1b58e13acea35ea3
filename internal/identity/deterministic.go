package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const prefix = "go-admin:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by resource).
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

// ItemUUID derives the identifier of a seeded item from its resource path and
// a stable natural key.
func ItemUUID(resource, key string) uuid.UUID {
	resource = strings.ToLower(strings.TrimSpace(resource))
	key = strings.TrimSpace(key)
	if resource == "" || key == "" {
		return uuid.Nil
	}
	return UUID(prefix + "item:" + resource + ":" + key)
}

// Sequence returns a generator yielding ItemUUID(resource, "<n>") for n = 1, 2, ...
// It is not safe for concurrent use.
func Sequence(resource string) func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return ItemUUID(resource, strconv.Itoa(n))
	}
}
