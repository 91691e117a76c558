package identity

import "hire-backend/models"

// Identity is the authenticated caller passed explicitly into every component call.
type Identity struct {
	UserID string
	Role   models.UserRole
	Email  string
}

func New(userID string, role models.UserRole) Identity {
	return Identity{UserID: userID, Role: role}
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

func (i Identity) Is(role models.UserRole) bool {
	return !i.IsAnonymous() && i.Role == role
}

func (i Identity) IsAdmin() bool {
	return i.Is(models.AdminRole)
}
