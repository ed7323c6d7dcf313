package user

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/user"
)

type Usecase struct {
	users      user.Repository
	log        *logrus.Logger
	bcryptCost int
}

func NewUsecase(users user.Repository, log *logrus.Logger, bcryptCost int) *Usecase {
	return &Usecase{users: users, log: log, bcryptCost: bcryptCost}
}

func (u *Usecase) List(ctx context.Context) ([]user.User, error) {
	out, err := u.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return out, nil
}

// Create adds a back-office account. Only super admins may call it.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*user.User, error) {
	if in.ActorRole != user.RoleSuperAdmin {
		return nil, ErrSuperAdminOnly
	}
	if !in.Role.IsStaff() {
		return nil, ErrStaffRoleOnly
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := u.users.GetByUsername(ctx, username); err == nil {
		return nil, user.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, apperr.Internal("check username", err)
	}
	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, apperr.Internal("check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}
	acct := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Status:       user.StatusActive,
		Permissions:  append([]string(nil), user.DefaultPermissions...),
	}
	if err := u.users.Create(ctx, acct); err != nil {
		return nil, apperr.Wrap("create user", err)
	}
	u.log.WithFields(logrus.Fields{"user_id": acct.ID, "role": acct.Role}).Info("user created")
	return acct, nil
}

// UpdateRole changes another account's role. Granting or revoking super_admin
// requires a super admin.
func (u *Usecase) UpdateRole(ctx context.Context, actor Actor, id uint64, role user.Role) (*user.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return u.update(ctx, actor, id, func(acct *user.User) error {
		if role == user.RoleSuperAdmin && actor.Role != user.RoleSuperAdmin {
			return ErrSuperAdminGrant
		}
		acct.Role = role
		return nil
	})
}

func (u *Usecase) UpdateStatus(ctx context.Context, actor Actor, id uint64, status user.Status) (*user.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.update(ctx, actor, id, func(acct *user.User) error {
		acct.Status = status
		return nil
	})
}

// update loads the target, refuses self-changes and changes to super admins by
// anyone else, then applies and saves.
func (u *Usecase) update(ctx context.Context, actor Actor, id uint64, apply func(*user.User) error) (*user.User, error) {
	if actor.ID == id {
		return nil, ErrOwnAccount
	}
	acct, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("load user", err)
	}
	if acct.Role == user.RoleSuperAdmin && actor.Role != user.RoleSuperAdmin {
		return nil, ErrSuperAdminGrant
	}
	if err := apply(acct); err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, acct); err != nil {
		return nil, apperr.Internal("save user", err)
	}
	u.log.WithFields(logrus.Fields{
		"user_id": acct.ID, "role": acct.Role, "status": acct.Status, "actor_id": actor.ID,
	}).Info("user updated")
	return acct, nil
}
