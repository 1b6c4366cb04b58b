package usecase

import (
	"context"
	"testing"

	"career-portal/internal/domain/activity"
	ucauth "career-portal/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(h *harness) *Auth {
	return NewAuthUsecase(h.store, h.jwt, h.activity)
}

func register(t *testing.T, uc *Auth, email string) AuthResult {
	t.Helper()
	res, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: email, Password: "secret1", FirstName: "Ana", LastName: "Lee",
	})
	require.NoError(t, err)
	return res
}

func TestAuth_Register(t *testing.T) {
	h := newHarness()
	uc := newAuth(h)

	res := register(t, uc, "  Ana@Example.COM ")

	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Empty(t, res.User.PasswordHash)
	assert.True(t, res.User.IsActive)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, []string{activity.ActionUserRegistered}, h.activities.actions(res.User.ID))
	assert.Len(t, h.notifier.seen, 1)
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc := newAuth(newHarness())
	cases := []ucauth.RegisterInput{
		{Email: "a@b.co", Password: "12345", FirstName: "A", LastName: "B"},
		{Email: "a@b.co", Password: "123456", FirstName: "", LastName: "B"},
		{Email: "not-an-email", Password: "123456", FirstName: "A", LastName: "B"},
	}
	for _, in := range cases {
		_, err := uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	uc := newAuth(newHarness())
	register(t, uc, "ana@example.com")

	_, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email: "ANA@example.com", Password: "secret1", FirstName: "Ana", LastName: "Lee",
	})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)
}

func TestAuth_Login(t *testing.T) {
	h := newHarness()
	uc := newAuth(h)
	reg := register(t, uc, "ana@example.com")

	_, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "ana@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	res, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, res.User.LastLogin)
	assert.Contains(t, h.users.login, reg.User.ID)
	assert.Contains(t, h.activities.actions(reg.User.ID), activity.ActionUserLogin)
}

func TestAuth_LoginDeactivated(t *testing.T) {
	h := newHarness()
	uc := newAuth(h)
	reg := register(t, uc, "ana@example.com")

	u := h.users.byID[reg.User.ID]
	u.IsActive = false
	h.users.byID[reg.User.ID] = u

	_, err := uc.Login(context.Background(), ucauth.LoginInput{Email: "ana@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ucauth.ErrAccountDisabled)
}

func TestAuth_Refresh(t *testing.T) {
	uc := newAuth(newHarness())
	reg := register(t, uc, "ana@example.com")

	_, _, err := uc.Refresh(context.Background(), reg.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = uc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	access, refresh, err := uc.Refresh(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestAuth_ForgotPasswordIsNeutral(t *testing.T) {
	h := newHarness()
	uc := newAuth(h)
	reg := register(t, uc, "ana@example.com")

	require.NoError(t, uc.ForgotPassword(context.Background(), "nobody@example.com"))
	require.NoError(t, uc.ForgotPassword(context.Background(), "ana@example.com"))
	assert.Contains(t, h.activities.actions(reg.User.ID), activity.ActionPasswordResetRequested)

	assert.ErrorIs(t, uc.ForgotPassword(context.Background(), " "), ErrInvalidInput)
}

func TestAuth_MeAndLogout(t *testing.T) {
	h := newHarness()
	uc := newAuth(h)
	reg := register(t, uc, "ana@example.com")
	h.skills.byUser[reg.User.ID] = append(h.skills.byUser[reg.User.ID], has("Go", "advanced"))

	me, err := uc.Me(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Len(t, me.Skills, 1)
	assert.False(t, me.HasResume())

	require.NoError(t, uc.Logout(context.Background(), reg.User.ID))
	assert.Contains(t, h.activities.actions(reg.User.ID), activity.ActionUserLogout)
}
