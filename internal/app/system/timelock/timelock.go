// Package timelock decides whether a time-locked resource is still
// closed for a member and, if so, how much waiting time remains.
//
// The evaluation is intentionally stateless: "now" moves, so callers
// must re-evaluate on every read and never cache the result.
package timelock

import (
	"fmt"
	"time"

	"github.com/dmagnetico/arsenal/internal/domain/models"
)

const (
	dayMillis  = 24 * 60 * 60 * 1000
	hourMillis = 60 * 60 * 1000
)

// Status is the outcome of a lock evaluation. Remaining is a
// display-ready countdown ("3d 7h" or "5h restantes") and is empty
// whenever Locked is false.
type Status struct {
	Locked    bool
	Remaining string
}

// Evaluate reports the lock state for a member who joined at joinedAt
// (epoch ms) against a resource configured with lockDays.
func Evaluate(joinedAt int64, lockDays int, role string) Status {
	return EvaluateAt(joinedAt, lockDays, role, time.Now())
}

// EvaluateAt is Evaluate against an explicit clock.
//
// Rules:
//   - admins bypass all time locks
//   - lockDays <= 0 means the resource was never time-locked
//   - once now reaches joinedAt + lockDays the lock opens permanently
func EvaluateAt(joinedAt int64, lockDays int, role string, now time.Time) Status {
	if role == models.RoleAdmin {
		return Status{}
	}

	unlockAt := joinedAt + int64(lockDays)*dayMillis
	diff := unlockAt - now.UnixMilli()
	if lockDays <= 0 || diff <= 0 {
		return Status{}
	}

	days := diff / dayMillis
	hours := (diff % dayMillis) / hourMillis
	if days > 0 {
		return Status{Locked: true, Remaining: fmt.Sprintf("%dd %dh", days, hours)}
	}
	return Status{Locked: true, Remaining: fmt.Sprintf("%dh restantes", hours)}
}
