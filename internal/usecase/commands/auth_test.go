//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"crafty-kid/internal/domain/user"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/pkg/jwt"
	"crafty-kid/internal/pkg/password"
	"crafty-kid/internal/usecase/commands"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/internal/usecase/shared"
	"crafty-kid/tests/common/builder"
	queriesmock "crafty-kid/tests/mock/queries"
	sharedmock "crafty-kid/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const loginPassword = "correct-horse-battery"

type authMocks struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	users     *sharedmock.MockUserRepository
	readStore *queriesmock.MockUserReadStore
	jwt       *jwt.Service
}

func newAuthMocks(ctrl *gomock.Controller) *authMocks {
	m := &authMocks{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		readStore: queriesmock.NewMockUserReadStore(ctrl),
		jwt:       jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour),
	}

	m.tx.EXPECT().Users().Return(m.users).AnyTimes()
	m.tx.EXPECT().DB().Return(db.DBTX(nil)).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		},
	).AnyTimes()

	return m
}

func (m *authMocks) commands() commands.AuthCommands {
	return commands.NewAuthCommands(m.uow, m.readStore, m.jwt)
}

func loginCredentials(t *testing.T, email string) user.Credentials {
	t.Helper()
	creds, err := user.NewCredentials(email, loginPassword)
	require.NoError(t, err)
	return creds
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := password.HashPassword(loginPassword)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().BuildReadModel()
		m.readStore.EXPECT().FindByEmail(ctx, view.Email).Return(view, hash, nil)
		m.users.EXPECT().UpdateLastLogin(ctx, gomock.Any(), view.ID).Return(nil)

		result, err := m.commands().Login(ctx, loginCredentials(t, view.Email))
		require.NoError(t, err)
		assert.Equal(t, view.ID, result.UserID)
		assert.Equal(t, view.Role, result.Role)
		assert.NotEmpty(t, result.TokenPair.AccessToken)
		assert.NotEmpty(t, result.TokenPair.RefreshToken)

		claims, err := m.jwt.ValidateToken(result.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		m.readStore.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, "", notFoundErr())

		_, err := m.commands().Login(ctx, loginCredentials(t, "nobody@example.com"))
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().BuildReadModel()
		otherHash, err := password.HashPassword("a-different-password")
		require.NoError(t, err)
		m.readStore.EXPECT().FindByEmail(ctx, view.Email).Return(view, otherHash, nil)

		_, err = m.commands().Login(ctx, loginCredentials(t, view.Email))
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		m.readStore.EXPECT().FindByEmail(ctx, view.Email).Return(view, hash, nil)

		_, err := m.commands().Login(ctx, loginCredentials(t, view.Email))
		assert.ErrorIs(t, err, queries.ErrUserInactive)
	})

	t.Run("last login failure does not fail the login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().BuildReadModel()
		m.readStore.EXPECT().FindByEmail(ctx, view.Email).Return(view, hash, nil)
		m.users.EXPECT().UpdateLastLogin(ctx, gomock.Any(), view.ID).Return(notFoundErr())

		result, err := m.commands().Login(ctx, loginCredentials(t, view.Email))
		require.NoError(t, err)
		assert.NotNil(t, result.TokenPair)
	})
}

func TestAuthCommands_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().BuildReadModel()
		refreshToken, err := m.jwt.GenerateRefreshToken(view.ID, user.Role(view.Role))
		require.NoError(t, err)

		m.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		pair, err := m.commands().RefreshToken(ctx, refreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().BuildReadModel()
		accessToken, err := m.jwt.GenerateAccessToken(view.ID, user.Role(view.Role))
		require.NoError(t, err)

		_, err = m.commands().RefreshToken(ctx, accessToken)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		_, err := m.commands().RefreshToken(ctx, "not-a-jwt")
		assert.True(t, errs.Is(err, commands.ErrTokenValidation), "want token validation, got %v", err)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newAuthMocks(ctrl)

		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		refreshToken, err := m.jwt.GenerateRefreshToken(view.ID, user.Role(view.Role))
		require.NoError(t, err)

		m.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		_, err = m.commands().RefreshToken(ctx, refreshToken)
		assert.ErrorIs(t, err, queries.ErrUserInactive)
	})
}
