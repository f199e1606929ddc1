package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
)

func TestNewUser(t *testing.T) {
	t.Run("creates advertiser account from telegram identity", func(t *testing.T) {
		u, err := NewUser(123456789, "Sardor", "Akhmedov", "@sardor", "uz-UZ")
		require.NoError(t, err)

		assert.Equal(t, int64(123456789), u.TelegramID())
		assert.Equal(t, "Sardor", u.FirstName())
		assert.Equal(t, "sardor", u.Username())
		assert.Equal(t, authorization.RoleAdvertiser, u.Role())
		assert.Equal(t, []authorization.UserRole{authorization.RoleAdvertiser}, u.Roles())
		assert.Equal(t, "uz", u.Locale())
		assert.True(t, u.IsActive())
		assert.False(t, u.IsBanned())
		assert.True(t, u.CanAuthenticate())
		assert.NotEmpty(t, u.SID())
		assert.Len(t, u.GetEvents(), 1)
	})

	t.Run("requires telegram ID", func(t *testing.T) {
		_, err := NewUser(0, "Sardor", "", "", "")
		assert.Error(t, err)
	})

	t.Run("requires first name", func(t *testing.T) {
		_, err := NewUser(42, "  ", "", "", "")
		assert.Error(t, err)
	})

	t.Run("defaults locale to en", func(t *testing.T) {
		u, err := NewUser(42, "Ann", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "en", u.Locale())
	})
}

func TestUserRoles(t *testing.T) {
	newUser := func(t *testing.T) *User {
		u, err := NewUser(42, "Ann", "", "", "en")
		require.NoError(t, err)
		return u
	}

	t.Run("grant adds role and keeps primary on lateral grant", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, u.GrantRole(authorization.RoleBotOwner))

		assert.True(t, u.HasRole(authorization.RoleBotOwner))
		assert.True(t, u.HasRole(authorization.RoleAdvertiser))
		assert.Equal(t, authorization.RoleBotOwner, u.Role(), "bot owner outranks advertiser")
	})

	t.Run("grant is idempotent", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, u.GrantRole(authorization.RoleModerator))
		require.NoError(t, u.GrantRole(authorization.RoleModerator))
		assert.Len(t, u.Roles(), 2)
	})

	t.Run("granting admin promotes primary", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, u.GrantRole(authorization.RoleAdmin))
		assert.Equal(t, authorization.RoleAdmin, u.Role())
	})

	t.Run("revoking primary demotes to highest remaining", func(t *testing.T) {
		u := newUser(t)
		require.NoError(t, u.GrantRole(authorization.RoleModerator))
		require.NoError(t, u.GrantRole(authorization.RoleAdmin))
		require.NoError(t, u.RevokeRole(authorization.RoleAdmin))

		assert.Equal(t, authorization.RoleModerator, u.Role())
		assert.False(t, u.HasRole(authorization.RoleAdmin))
	})

	t.Run("cannot revoke the only role", func(t *testing.T) {
		u := newUser(t)
		err := u.RevokeRole(authorization.RoleAdvertiser)
		assert.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		u := newUser(t)
		assert.Error(t, u.GrantRole(authorization.UserRole("WIZARD")))
	})
}

func TestUserBan(t *testing.T) {
	u, err := NewUser(42, "Ann", "", "", "en")
	require.NoError(t, err)

	t.Run("ban blocks authentication", func(t *testing.T) {
		require.NoError(t, u.Ban("spam ads"))
		assert.True(t, u.IsBanned())
		assert.Equal(t, "spam ads", u.BanReason())
		assert.False(t, u.CanAuthenticate())
	})

	t.Run("double ban fails", func(t *testing.T) {
		assert.ErrorIs(t, u.Ban("again"), ErrAlreadyBanned)
	})

	t.Run("unban restores access", func(t *testing.T) {
		require.NoError(t, u.Unban())
		assert.False(t, u.IsBanned())
		assert.Empty(t, u.BanReason())
		assert.True(t, u.CanAuthenticate())
	})

	t.Run("unban without ban fails", func(t *testing.T) {
		assert.ErrorIs(t, u.Unban(), ErrNotBanned)
	})

	t.Run("ban requires reason", func(t *testing.T) {
		assert.Error(t, u.Ban("  "))
	})
}

func TestUserDeactivation(t *testing.T) {
	u, err := NewUser(42, "Ann", "", "", "en")
	require.NoError(t, err)

	u.Deactivate()
	assert.False(t, u.IsActive())
	assert.False(t, u.CanAuthenticate())

	u.Reactivate()
	assert.True(t, u.IsActive())
	assert.True(t, u.CanAuthenticate())
}

func TestRecordLogin(t *testing.T) {
	u, err := NewUser(42, "Ann", "", "", "en")
	require.NoError(t, err)
	require.Nil(t, u.LastLoginAt())

	u.RecordLogin("Anna", "Smith", "@anna_smith")

	require.NotNil(t, u.LastLoginAt())
	assert.Equal(t, "Anna", u.FirstName())
	assert.Equal(t, "Smith", u.LastName())
	assert.Equal(t, "anna_smith", u.Username())
	assert.Equal(t, "Anna Smith", u.DisplayName())
}

func TestReconstructUser(t *testing.T) {
	u, err := NewUser(42, "Ann", "", "", "en")
	require.NoError(t, err)
	u.SetID(7)

	rebuilt := ReconstructUser(UserReconstructParams{
		ID:         u.ID(),
		SID:        u.SID(),
		TelegramID: u.TelegramID(),
		Username:   u.Username(),
		FirstName:  u.FirstName(),
		LastName:   u.LastName(),
		Role:       u.Role(),
		Roles:      u.Roles(),
		IsActive:   u.IsActive(),
		Locale:     u.Locale(),
		Version:    u.Version(),
		CreatedAt:  u.CreatedAt(),
		UpdatedAt:  u.UpdatedAt(),
	})

	assert.Equal(t, u.ID(), rebuilt.ID())
	assert.Equal(t, u.TelegramID(), rebuilt.TelegramID())
	assert.Equal(t, u.Role(), rebuilt.Role())
	assert.Empty(t, rebuilt.GetEvents())
}
