package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mscaglia/finbook/internal/platform/user"
	"github.com/mscaglia/finbook/internal/transport/httpapi/middleware"
	"github.com/mscaglia/finbook/pkg/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// MockPrincipalStore is a mock implementation of middleware.PrincipalStore
type MockPrincipalStore struct {
	mock.Mock
}

func (m *MockPrincipalStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := middleware.NewTokenService(testSecret, time.Hour)
	userID := uuid.New()

	tokenString, err := tokens.Generate(userID, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tokens.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestTokenService_Validate(t *testing.T) {
	userID := uuid.New()

	t.Run("expired token", func(t *testing.T) {
		tokens := middleware.NewTokenService(testSecret, -time.Minute)
		tokenString, err := tokens.Generate(userID, "ana@example.com")
		require.NoError(t, err)

		_, err = tokens.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		issuer := middleware.NewTokenService(testSecret, time.Hour)
		verifier := middleware.NewTokenService("another-secret-another-secret-ab", time.Hour)

		tokenString, err := issuer.Generate(userID, "ana@example.com")
		require.NoError(t, err)

		_, err = verifier.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		tokens := middleware.NewTokenService(testSecret, time.Hour)
		_, err := tokens.Validate("not.a.token")
		assert.Error(t, err)
	})
}

func principalChain(t *testing.T, tokens *middleware.TokenService, store middleware.PrincipalStore) (http.Handler, *bool, **user.User) {
	t.Helper()
	log := logger.New("test", io.Discard)

	reached := false
	var seen *user.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen, _ = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return middleware.Principal(tokens, store, log)(next), &reached, &seen
}

func TestPrincipal(t *testing.T) {
	tokens := middleware.NewTokenService(testSecret, time.Hour)

	t.Run("no header is anonymous", func(t *testing.T) {
		store := new(MockPrincipalStore)
		handler, reached, seen := principalChain(t, tokens, store)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		assert.Nil(t, *seen)
		store.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("non-bearer scheme is anonymous", func(t *testing.T) {
		store := new(MockPrincipalStore)
		handler, reached, seen := principalChain(t, tokens, store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		assert.Nil(t, *seen)
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		store := new(MockPrincipalStore)
		handler, reached, seen := principalChain(t, tokens, store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		assert.Nil(t, *seen)
	})

	t.Run("expired token is anonymous", func(t *testing.T) {
		expired := middleware.NewTokenService(testSecret, -time.Minute)
		tokenString, err := expired.Generate(uuid.New(), "ana@example.com")
		require.NoError(t, err)

		store := new(MockPrincipalStore)
		handler, reached, seen := principalChain(t, tokens, store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		assert.Nil(t, *seen)
	})

	t.Run("valid token resolves the principal", func(t *testing.T) {
		principal := &user.User{ID: uuid.New(), Email: "ana@example.com"}
		tokenString, err := tokens.Generate(principal.ID, principal.Email)
		require.NoError(t, err)

		store := new(MockPrincipalStore)
		store.On("GetByEmail", mock.Anything, principal.Email).Return(principal, nil)
		handler, reached, seen := principalChain(t, tokens, store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		require.NotNil(t, *seen)
		assert.Equal(t, principal.ID, (*seen).ID)
	})

	t.Run("valid token for a deleted account is 401", func(t *testing.T) {
		tokenString, err := tokens.Generate(uuid.New(), "gone@example.com")
		require.NoError(t, err)

		store := new(MockPrincipalStore)
		store.On("GetByEmail", mock.Anything, "gone@example.com").Return(nil, user.ErrUserNotFound)
		handler, reached, _ := principalChain(t, tokens, store)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *reached)
		assert.Contains(t, rec.Body.String(), "account no longer exists")
	})
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		middleware.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "authentication required")
	})

	t.Run("resolved principal passes through", func(t *testing.T) {
		principal := &user.User{ID: uuid.New(), Email: "ana@example.com"}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.ContextWithPrincipal(req.Context(), principal))

		rec := httptest.NewRecorder()
		middleware.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
