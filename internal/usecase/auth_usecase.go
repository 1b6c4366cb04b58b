package usecase

import (
	"context"
	"errors"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/user"
	"career-portal/internal/pkg/jwt"
	ucauth "career-portal/internal/usecase/auth"

	"github.com/google/uuid"
)

type AuthResult struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Me(ctx context.Context, userID uuid.UUID) (user.User, error)
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context, userID uuid.UUID) error
}

type Auth struct {
	authSvc  *ucauth.Service
	users    user.Repository
	store    UserStore
	jwt      jwt.Service
	activity *ActivityLog
}

func NewAuthUsecase(store UserStore, jwtSvc jwt.Service, activityLog *ActivityLog) *Auth {
	return &Auth{
		authSvc:  ucauth.NewService(store.Users),
		users:    store.Users,
		store:    store,
		jwt:      jwtSvc,
		activity: activityLog,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	res, err := u.issue(usr)
	if err != nil {
		return AuthResult{}, err
	}
	u.activity.Record(ctx, usr.ID, activity.ActionUserRegistered, "User registered successfully", nil)
	return res, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	res, err := u.issue(usr)
	if err != nil {
		return AuthResult{}, err
	}
	u.activity.Record(ctx, usr.ID, activity.ActionUserLogin, "User logged in", nil)
	return res, nil
}

func (u *Auth) issue(usr user.User) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}
	if !usr.IsActive {
		return "", "", ucauth.ErrAccountDisabled
	}

	res, err := u.issue(usr)
	if err != nil {
		return "", "", err
	}
	return res.AccessToken, res.RefreshToken, nil
}

func (u *Auth) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.store.Load(ctx, userID)
}

// ForgotPassword never reveals whether the address is registered.
func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	email = ucauth.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return ErrInternal
	}
	u.activity.Record(ctx, usr.ID, activity.ActionPasswordResetRequested, "Password reset requested", nil)
	return nil
}

func (u *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	u.activity.Record(ctx, userID, activity.ActionUserLogout, "User logged out", nil)
	return nil
}
