package models

// Roles. Admins bypass every lock and see the curation surface.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Magnetic power is a cosmetic score shown on the profile, fixed per role.
const (
	AdminMagneticPower = 100
	UserMagneticPower  = 45
)

// User is the ephemeral session identity. It is re-derived from the
// fixed credential rules at every login and never stored as an entity;
// only the first-login timestamp is persisted (per normalized identity)
// so a re-login does not reset the time-lock clock.
type User struct {
	ID            string
	Name          string
	Role          string
	JoinedAt      int64 // epoch ms of first login for this identity
	MagneticPower int
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
