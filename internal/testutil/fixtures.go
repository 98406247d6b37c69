package testutil

import (
	"time"

	"github.com/dmagnetico/arsenal/internal/domain/models"
	"github.com/google/uuid"
)

// MakeResource builds an unlocked link resource for tests. Callers
// tweak the fields they care about afterwards.
func MakeResource(title, module string) models.Resource {
	return models.Resource{
		ID:           uuid.NewString(),
		Title:        title,
		Type:         models.TypeLink,
		Module:       module,
		ExternalLink: "https://example.com/" + uuid.NewString(),
		CreatedAt:    time.Now().UnixMilli(),
	}
}

// MakeLockedResource builds a resource under a manual lock with the
// given unlock key.
func MakeLockedResource(title, key string) models.Resource {
	r := MakeResource(title, models.DefaultModule)
	r.IsManualLock = true
	r.UnlockKey = key
	r.CheckoutURL = "https://pay.example.com/" + uuid.NewString()
	return r
}

// AdminUser returns the fixed administrator identity.
func AdminUser() models.User {
	return models.User{
		ID:            "admin@dominio.com",
		Name:          "Comandante Supremo",
		Role:          models.RoleAdmin,
		JoinedAt:      time.Now().UnixMilli(),
		MagneticPower: models.AdminMagneticPower,
	}
}

// MemberUser returns a member identity joined at the given epoch-ms
// instant.
func MemberUser(email string, joinedAt int64) models.User {
	return models.User{
		ID:            email,
		Name:          email,
		Role:          models.RoleUser,
		JoinedAt:      joinedAt,
		MagneticPower: models.UserMagneticPower,
	}
}
