package user

import (
	"time"

	"loan-backoffice/internal/apperr"
)

type Role string

const (
	RoleSuperAdmin        Role = "super_admin"
	RoleAdmin             Role = "admin"
	RoleAdministrator     Role = "administrator"
	RoleLoanOfficer       Role = "loan_officer"
	RoleSalesOfficer      Role = "sales_officer"
	RoleAccountsOfficer   Role = "accounts_officer"
	RoleRecoveriesOfficer Role = "recoveries_officer"
	RoleOfficeAdmin       Role = "office_admin"
	RoleBorrower          Role = "borrower"
)

var (
	// LoanManagers may create loans, change loan status and browse borrowers.
	LoanManagers = []Role{RoleSuperAdmin, RoleAdmin, RoleAdministrator, RoleLoanOfficer}
	// UserAdmins may list users and change their role or status.
	UserAdmins = []Role{RoleSuperAdmin, RoleAdmin, RoleAdministrator}
	// Staff is every back-office role.
	Staff = []Role{
		RoleSuperAdmin, RoleAdmin, RoleAdministrator, RoleLoanOfficer, RoleSalesOfficer,
		RoleAccountsOfficer, RoleRecoveriesOfficer, RoleOfficeAdmin,
	}
	// Everyone includes borrowers.
	Everyone = []Role{
		RoleSuperAdmin, RoleAdmin, RoleAdministrator, RoleLoanOfficer, RoleSalesOfficer,
		RoleAccountsOfficer, RoleRecoveriesOfficer, RoleOfficeAdmin, RoleBorrower,
	}
)

func (r Role) Valid() bool { return r == RoleBorrower || r.IsStaff() }

func (r Role) IsStaff() bool { return r.In(Staff) }

func (r Role) In(roles []Role) bool {
	for _, x := range roles {
		if r == x {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

var DefaultPermissions = []string{"view"}

var (
	ErrNotFound      = apperr.NotFound("user not found")
	ErrUsernameTaken = apperr.Validation("Username already exists")
	ErrEmailTaken    = apperr.Validation("Email already registered")
	// ErrDuplicate is reported by storage when a unique key races past the pre-checks.
	ErrDuplicate     = apperr.Validation("Username or email already exists")
)

type User struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	Username     string     `gorm:"column:username;size:50;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash string     `gorm:"column:password;size:255;not null" json:"-"`
	Role         Role       `gorm:"column:role;type:varchar(32);not null" json:"role"`
	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	FullName     string     `gorm:"column:full_name;size:200;not null" json:"fullName"`
	Status       Status     `gorm:"column:status;type:varchar(16);not null;default:active" json:"status"`
	Permissions  []string   `gorm:"column:permissions;type:text;serializer:json" json:"permissions"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Active reports whether the account may authenticate and pass role checks.
func (u *User) Active() bool { return u.Status == StatusActive }
