package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/session"
	"loan-backoffice/internal/domain/uow"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/pkg/id"
)

type Mailer interface {
	SendWelcome(ctx context.Context, u *user.User) error
}

type Config struct {
	BcryptCost int
	SessionTTL time.Duration
}

type Usecase struct {
	users    user.Repository
	uow      uow.UnitOfWork
	sessions session.Store
	mailer   Mailer
	log      *logrus.Logger
	cfg      Config
	dummy    []byte
	now      func() time.Time
	// mailDone runs after every welcome mail attempt.
	mailDone func()
}

func NewUsecase(users user.Repository, tx uow.UnitOfWork, sessions session.Store, mailer Mailer, log *logrus.Logger, cfg Config) (*Usecase, error) {
	// compared against when the username is unknown so both paths cost one bcrypt run
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &Usecase{
		users: users, uow: tx, sessions: sessions, mailer: mailer, log: log,
		cfg: cfg, dummy: dummy, now: time.Now, mailDone: func() {},
	}, nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	acct, err := u.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, user.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(u.dummy, []byte(in.Password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !acct.Active() {
		return nil, ErrAccountInactive
	}

	now := u.now().UTC()
	if err := u.users.TouchLastLogin(ctx, acct.ID, now); err != nil {
		return nil, apperr.Internal("record login", err)
	}
	acct.LastLoginAt = &now

	if in.PreviousSessionID != "" {
		_ = u.sessions.Delete(ctx, in.PreviousSessionID)
	}
	s := &session.Session{
		ID:         id.NewToken64(),
		UserID:     acct.ID,
		Role:       string(acct.Role),
		CreatedAt:  now,
		LastAccess: now,
		ExpiresAt:  now.Add(u.cfg.SessionTTL),
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, apperr.Internal("create session", err)
	}
	u.log.WithFields(logrus.Fields{"user_id": acct.ID, "role": acct.Role}).Info("login")
	return &LoginResult{User: acct, Session: s}, nil
}

func (u *Usecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Internal("delete session", err)
	}
	return nil
}

// ensureUnique reports the first taken identifier.
func ensureUnique(ctx context.Context, users user.Repository, username, email string) error {
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return user.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	return nil
}

// Register creates the borrower account and its profile in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := ensureUnique(ctx, u.users, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	acct := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         user.RoleBorrower,
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Status:       user.StatusActive,
		Permissions:  append([]string(nil), user.DefaultPermissions...),
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Create(ctx, acct); err != nil {
			return err
		}
		return r.Borrowers.Create(ctx, &borrower.Borrower{
			UserID:           acct.ID,
			PhoneNumber:      in.PhoneNumber,
			Address:          in.Address,
			EmploymentStatus: in.EmploymentStatus,
			MonthlyIncome:    in.MonthlyIncome,
		})
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return nil, err
		}
		return nil, apperr.Internal("register", err)
	}

	u.log.WithField("user_id", acct.ID).Info("borrower registered")
	go func(ctx context.Context) {
		defer u.mailDone()
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := u.mailer.SendWelcome(ctx, acct); err != nil {
			u.log.WithError(err).WithField("user_id", acct.ID).Warn("welcome mail failed")
		}
	}(context.WithoutCancel(ctx))
	return acct, nil
}

func (u *Usecase) Me(ctx context.Context, userID uint64) (*user.User, error) {
	return u.users.GetByID(ctx, userID)
}
