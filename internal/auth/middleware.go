package auth

import (
	"context"
	"net/http"

	"guestlist/internal/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Middleware authenticates every request behind it: bearer token present,
// signature valid, token not denied by a logout. The resolved user id lands
// in the request context.
func Middleware(issuer *TokenIssuer, denylist *Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				utils.RespondMessage(w, http.StatusUnauthorized, "failed", err.Error())
				return
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				utils.RespondMessage(w, http.StatusUnauthorized, "failed", "invalid or expired token")
				return
			}

			if denylist != nil {
				denied, err := denylist.IsDenied(r.Context(), token)
				if err != nil {
					utils.RespondMessage(w, http.StatusInternalServerError, "failed", "internal server error")
					return
				}
				if denied {
					utils.RespondMessage(w, http.StatusUnauthorized, "failed", "token has been logged out")
					return
				}
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id placed in the context by
// Middleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID is a test seam for handlers that read the authenticated user
// from the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
