package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mscaglia/finbook/internal/platform/user"
	"github.com/mscaglia/finbook/pkg/logger"
)

// principalKey is the context key the resolved principal is bound to.
// Request-scoped only; the principal is never stored anywhere shared.
type principalKey struct{}

// Claims represents the JWT claims carried by a bearer credential
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer credentials. It is
// stateless: a credential is self-contained and checked purely against the
// process-wide signing secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate produces a signed credential embedding the user's id and login email
func (s *TokenService) Generate(userID uuid.UUID, email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "finbook",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies signature and expiry and returns the embedded claims.
// Every failure mode (tampering, malformed encoding, expiry) comes back as an
// ordinary error for the caller to treat as "no credential".
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// PrincipalStore is the credential-store lookup the resolver needs
type PrincipalStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Principal resolves the Authorization header into an authenticated principal
// once per request. A missing header, a non-Bearer scheme or an invalid or
// expired credential all yield an anonymous request, not an error; rejection
// is left to RequireAuth on routes that need identity. A valid credential
// whose subject no longer exists fails the request outright: that is a
// consistency failure, not a bad login.
func Principal(tokens *TokenService, store PrincipalStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				// Anonymous, same as no header
				next.ServeHTTP(w, r)
				return
			}

			principal, err := store.GetByEmail(r.Context(), claims.Email)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					respondError(w, "account no longer exists", http.StatusUnauthorized)
					return
				}
				log.WithContext(r.Context()).WithError(err).Error("principal lookup failed")
				respondError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			ctx = context.WithValue(ctx, logger.PrincipalIDKey, principal.ID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no resolved principal
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			respondError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext extracts the resolved principal from the request context
func PrincipalFromContext(ctx context.Context) (*user.User, bool) {
	principal, ok := ctx.Value(principalKey{}).(*user.User)
	return principal, ok
}

// ContextWithPrincipal binds a principal to a context. Used by tests and by
// the resolver itself.
func ContextWithPrincipal(ctx context.Context, principal *user.User) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
