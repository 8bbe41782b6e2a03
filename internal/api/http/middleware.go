package http

import (
	"context"
	"net/http"
	"strings"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/repository"
	"sainath-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// userID extracts the authenticated subject set by AuthMiddleware.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// AuthMiddleware authenticates requests before they reach a handler.
// It accepts a locally issued access token, or, when a Firebase
// verifier is configured, a Firebase ID token resolved to a local
// account by email.
type AuthMiddleware struct {
	tokens   security.TokenManager
	firebase *security.FirebaseVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, firebase *security.FirebaseVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, firebase: firebase, userRepo: userRepo}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
			return
		}

		id, err := m.resolveSubject(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) resolveSubject(ctx context.Context, token string) (string, error) {
	claims, err := m.tokens.ValidateToken(token)
	if err == nil {
		if claims.Type != security.TokenTypeAccess {
			return "", security.ErrWrongTokenType
		}
		return claims.UserID, nil
	}
	if m.firebase == nil {
		return "", err
	}

	_, email, fbErr := m.firebase.VerifyIDToken(ctx, token)
	if fbErr != nil {
		return "", err
	}
	user, lookupErr := m.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if lookupErr != nil {
		logger.Warn("firebase token for unknown account", "email", email)
		return "", domain.ErrPermissionDenied
	}
	return user.ID, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// SSE clients cannot set headers from EventSource.
	return r.URL.Query().Get("token")
}
