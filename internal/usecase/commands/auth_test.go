//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/pkg/jwt"
	"parking-reserve/internal/pkg/password"
	"parking-reserve/internal/usecase/commands"
	"parking-reserve/internal/usecase/shared"
	"parking-reserve/tests/common/builder"
	queriesmock "parking-reserve/tests/mock/queries"
	sharedmock "parking-reserve/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authCommandsFixture struct {
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	users     *sharedmock.MockUserRepository
	readStore *queriesmock.MockUserReadStore
	jwtSvc    *jwt.Service
	commands  commands.AuthCommands
}

func newAuthCommandsFixture(t *testing.T, ctrl *gomock.Controller) *authCommandsFixture {
	t.Helper()

	f := &authCommandsFixture{
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		tx:        sharedmock.NewMockTx(ctrl),
		users:     sharedmock.NewMockUserRepository(ctrl),
		readStore: queriesmock.NewMockUserReadStore(ctrl),
		jwtSvc:    jwt.NewService("test-secret-key", time.Hour),
	}

	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()

	f.commands = commands.NewAuthCommands(f.uow, f.readStore, f.jwtSvc)
	return f
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success: returns a token that validates back to the user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		b := builder.NewUserBuilder()
		view := b.BuildView()
		hash, err := password.HashPassword(b.Password)
		require.NoError(t, err)

		f.readStore.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(view, hash, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), view.ID).Return(nil)

		result, err := f.commands.Login(ctx, b.BuildLoginRequestDTO())

		require.NoError(t, err)
		assert.Equal(t, view.ID, result.UserID)

		claims, err := f.jwtSvc.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
		assert.Equal(t, view.Role, claims.Role)
	})

	t.Run("success: failed last-login update does not fail the login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		b := builder.NewUserBuilder()
		view := b.BuildView()
		hash, err := password.HashPassword(b.Password)
		require.NoError(t, err)

		f.readStore.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(view, hash, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), view.ID).Return(assert.AnError)

		result, err := f.commands.Login(ctx, b.BuildLoginRequestDTO())

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("error: wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		b := builder.NewUserBuilder()
		view := b.BuildView()
		hash, err := password.HashPassword("different-password")
		require.NoError(t, err)

		f.readStore.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(view, hash, nil)

		_, err = f.commands.Login(ctx, b.BuildLoginRequestDTO())
		assert.True(t, errs.Is(err, commands.ErrInvalidCredentials))
	})

	t.Run("error: unknown email maps to invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		b := builder.NewUserBuilder()
		f.readStore.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(nil, "", assert.AnError)

		_, err := f.commands.Login(ctx, b.BuildLoginRequestDTO())
		assert.True(t, errs.Is(err, commands.ErrInvalidCredentials))
	})

	t.Run("error: inactive account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		b := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.IsActive = false })
		view := b.BuildView()
		hash, err := password.HashPassword(b.Password)
		require.NoError(t, err)

		f.readStore.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(view, hash, nil)

		_, err = f.commands.Login(ctx, b.BuildLoginRequestDTO())
		assert.True(t, errs.Is(err, commands.ErrUserInactive))
	})

	t.Run("error: malformed email fails before any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAuthCommandsFixture(t, ctrl)

		req := builder.NewUserBuilder().
			With(func(b *builder.UserBuilder) { b.Email = "not-an-email" }).
			BuildLoginRequestDTO()

		_, err := f.commands.Login(ctx, req)
		assert.True(t, errs.Is(err, commands.ErrAuthenticationFailed))
	})
}
