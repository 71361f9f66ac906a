package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/roomdesk/dashboard-client/internal/auth"
	"github.com/roomdesk/dashboard-client/internal/auth/mock"
)

func TestSession_Login(t *testing.T) {
	ctx := context.Background()
	credentials := auth.Credentials{Email: "user@test.local", Password: "secret"}

	t.Run("success_persists_token_and_authenticates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Login(gomock.Any(), credentials.Email, credentials.Password).Return("t1", nil)

		require.NoError(t, session.Login(ctx, credentials))

		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Equal(t, "t1", stored)
		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("expired_token_from_backend_is_never_authenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		session := auth.NewSession(gateway, storage)

		expired := signedToken(t, jwt.MapClaims{"exp": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix()})
		gateway.EXPECT().Login(gomock.Any(), credentials.Email, credentials.Password).Return(expired, nil)

		require.NoError(t, session.Login(ctx, credentials))

		state := session.State()
		assert.Equal(t, expired, state.Token)
		assert.False(t, state.IsAuthenticated)
	})

	t.Run("gateway_failure_keeps_state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		session := auth.NewSession(gateway, auth.NewMemoryStorage())

		gateway.EXPECT().
			Login(gomock.Any(), credentials.Email, credentials.Password).
			Return("", auth.NewError("Incorrect email or password."))

		err := session.Login(ctx, credentials)

		var authErr *auth.Error
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Incorrect email or password.", authErr.Message)
		assert.Equal(t, auth.State{IsLoading: true}, session.State())
	})

	t.Run("storage_failure_is_returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := mock.NewStorage(ctrl)
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Login(gomock.Any(), credentials.Email, credentials.Password).Return("t1", nil)
		storage.EXPECT().Set("t1").Return(errors.New("disk full"))

		require.Error(t, session.Login(ctx, credentials))
		assert.Equal(t, auth.State{IsLoading: true}, session.State())
	})
}

func TestSession_Register(t *testing.T) {
	ctx := context.Background()
	registration := auth.Registration{
		Name:     "Test User",
		Username: "tester",
		Email:    "user@test.local",
		Password: "secret",
	}

	t.Run("with_token_authenticates_immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Register(gomock.Any(), registration).Return("t1", nil)

		require.NoError(t, session.Register(ctx, registration))

		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Equal(t, "t1", stored)
		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("expired_token_stays_unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		session := auth.NewSession(gateway, storage)

		expired := signedToken(t, jwt.MapClaims{"exp": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix()})
		gateway.EXPECT().Register(gomock.Any(), registration).Return(expired, nil)

		require.NoError(t, session.Register(ctx, registration))
		assert.False(t, session.State().IsAuthenticated)
	})

	t.Run("without_token_stays_unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Register(gomock.Any(), registration).Return("", nil)

		require.NoError(t, session.Register(ctx, registration))

		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Empty(t, stored)
		assert.Equal(t, auth.State{IsLoading: true}, session.State())
	})
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewGateway(ctrl)
	storage := auth.NewMemoryStorage()
	require.NoError(t, storage.Set("t1"))

	session := auth.NewSession(gateway, storage)
	session.Logout(ctx)

	stored, err := storage.Get()
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Equal(t, auth.State{}, session.State())
}

func TestSession_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no_stored_token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		session := auth.NewSession(gateway, auth.NewMemoryStorage())

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{}, session.State())
	})

	t.Run("stored_token_verified_by_backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Verify(gomock.Any(), "t1").Return(true, nil)

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("stored_token_rejected_by_backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Verify(gomock.Any(), "t1").Return(false, nil)

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{}, session.State())
		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("locally_expired_token_skips_backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		expired := signedToken(t, jwt.MapClaims{"exp": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix()})
		require.NoError(t, storage.Set(expired))
		session := auth.NewSession(gateway, storage)

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{}, session.State())
		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("verification_failure_falls_back_to_local_heuristic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Verify(gomock.Any(), "t1").Return(false, errors.New("connection refused"))

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("verification_timeout_falls_back_to_local_heuristic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage, auth.WithVerifyTimeout(30*time.Millisecond))

		gateway.EXPECT().
			Verify(gomock.Any(), "t1").
			DoAndReturn(func(ctx context.Context, _ string) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			})

		session.Bootstrap(ctx)

		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("cancelled_context_discards_result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		session := auth.NewSession(gateway, auth.NewMemoryStorage())

		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		session.Bootstrap(cancelledCtx)

		assert.Equal(t, auth.State{IsLoading: true}, session.State())
	})
}

func TestSession_CheckAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Verify(gomock.Any(), "t1").Return(true, nil)

		assert.True(t, session.CheckAuth(ctx))
		assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, session.State())
	})

	t.Run("rejected_session_is_cleared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		storage := auth.NewMemoryStorage()
		require.NoError(t, storage.Set("t1"))
		session := auth.NewSession(gateway, storage)

		gateway.EXPECT().Verify(gomock.Any(), "t1").Return(false, nil)

		assert.False(t, session.CheckAuth(ctx))
		assert.Equal(t, auth.State{}, session.State())
		stored, err := storage.Get()
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("missing_token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewGateway(ctrl)
		session := auth.NewSession(gateway, auth.NewMemoryStorage())

		assert.False(t, session.CheckAuth(ctx))
	})
}

func TestSession_Subscribe(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewGateway(ctrl)
	storage := auth.NewMemoryStorage()
	session := auth.NewSession(gateway, storage)

	var notified []auth.State
	unsubscribe := session.Subscribe(func(state auth.State) {
		notified = append(notified, state)
	})

	gateway.EXPECT().Login(gomock.Any(), "user@test.local", "secret").Return("t1", nil)
	require.NoError(t, session.Login(ctx, auth.Credentials{Email: "user@test.local", Password: "secret"}))

	require.Len(t, notified, 1)
	assert.Equal(t, auth.State{Token: "t1", IsAuthenticated: true}, notified[0])

	unsubscribe()
	session.Logout(ctx)

	assert.Len(t, notified, 1)
}
