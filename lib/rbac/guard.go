package rbac

import (
	"slices"

	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/models"
)

// OwnershipFunc reports whether the caller owns the entity being acted on.
type OwnershipFunc func(who identity.Identity) bool

// Check is the component level guard: the caller must be authenticated, hold one
// of roles (any role when empty) and satisfy owns when it is given.
func Check(who identity.Identity, action string, roles []models.UserRole, owns OwnershipFunc) error {
	if who.IsAnonymous() {
		return errs.Forbidden("authentication required to %s", action)
	}
	if len(roles) != 0 && !slices.Contains(roles, who.Role) {
		return errs.Forbidden("role %s may not %s", who.Role.ToHuman(), action)
	}
	if owns != nil && !owns(who) {
		return errs.Forbidden("only the owner may %s", action)
	}
	return nil
}

func RequireRole(who identity.Identity, action string, roles ...models.UserRole) error {
	return Check(who, action, roles, nil)
}

func RequireAdmin(who identity.Identity, action string) error {
	return Check(who, action, AdminRoleSet, nil)
}

// OwnedBy builds a predicate matching the caller's user id.
func OwnedBy(ownerUserIDs ...string) OwnershipFunc {
	return func(who identity.Identity) bool {
		return slices.Contains(ownerUserIDs, who.UserID)
	}
}

// OrAdmin lets admins through regardless of ownership.
func OrAdmin(owns OwnershipFunc) OwnershipFunc {
	return func(who identity.Identity) bool {
		return who.IsAdmin() || owns(who)
	}
}
