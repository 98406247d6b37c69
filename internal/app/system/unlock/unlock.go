// Package unlock implements the manual key gate for purchased content.
//
// A manually locked resource opens only after the member submits the
// key configured on the resource (or the master override). Successful
// unlocks are recorded durably per profile so the member never has to
// re-enter a key.
package unlock

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dmagnetico/arsenal/internal/domain/models"
)

// MasterKey unlocks any manually locked resource regardless of its
// configured key. This is the distribution override handed to members
// at purchase time; it is load-bearing, user-visible behavior, not a
// debug leftover. It doubles as the member login key.
const MasterKey = "MAGNETICO2026"

// StorageKey is the small-value store key holding the JSON-encoded
// list of unlocked resource ids.
const StorageKey = "dm_unlocked_items"

// KV is the narrow slice of the small-value store the vault needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Normalize folds a submitted code (or configured key) for comparison:
// surrounding whitespace ignored, case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Matches reports whether the submitted code opens the resource. It is
// the pure comparison, without the durable side effect of Attempt.
func Matches(r models.Resource, code string) bool {
	c := Normalize(code)
	if c == "" {
		return false
	}
	return c == Normalize(r.UnlockKey) || c == MasterKey
}

// Vault validates unlock attempts and records successes in the
// small-value store. The unlocked set is additive, never expires, and
// is shared by every identity using this profile.
type Vault struct {
	kv KV
}

// NewVault binds a vault to the given small-value store.
func NewVault(kv KV) *Vault {
	return &Vault{kv: kv}
}

// Attempt validates code against the resource. On a match the resource
// id is appended to the persisted unlocked set (idempotently) and
// Attempt returns true. A mismatch returns false with no side effect;
// the caller may retry immediately.
func (v *Vault) Attempt(ctx context.Context, r models.Resource, code string) (bool, error) {
	if !Matches(r, code) {
		return false, nil
	}

	ids, err := v.unlockedIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == r.ID {
			return true, nil
		}
	}
	ids = append(ids, r.ID)

	raw, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}
	if err := v.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		return false, err
	}
	return true, nil
}

// IsUnlocked reports whether a prior successful attempt recorded the
// resource id in this profile's unlocked set.
func (v *Vault) IsUnlocked(ctx context.Context, resourceID string) (bool, error) {
	ids, err := v.unlockedIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func (v *Vault) unlockedIDs(ctx context.Context) ([]string, error) {
	raw, ok, err := v.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupt entry is treated as empty rather than wedging every
		// unlock check; the next successful attempt rewrites it.
		return nil, nil
	}
	return ids, nil
}
