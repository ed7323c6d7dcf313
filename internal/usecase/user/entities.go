package user

import (
	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/user"
)

type CreateInput struct {
	ActorRole user.Role
	Username  string
	Password  string
	Email     string
	FullName  string
	Role      user.Role
}

// Actor is the signed-in account performing a change.
type Actor struct {
	ID   uint64
	Role user.Role
}

var (
	ErrSuperAdminOnly  = apperr.Forbidden("Only super admins can create users")
	ErrSuperAdminGrant = apperr.Forbidden("Only super admins can manage super admin accounts")
	ErrOwnAccount      = apperr.Forbidden("You cannot change your own role or status")
	ErrStaffRoleOnly   = apperr.Validation("Role must be a staff role")
	ErrInvalidRole     = apperr.Validation("Invalid role")
	ErrInvalidStatus   = apperr.Validation("Invalid status")
)
