package middleware

import (
	"context"
	"database/sql"
	c "elverra-club-backend/context"
	"elverra-club-backend/factory"
	"elverra-club-backend/firebase"
	"elverra-club-backend/logger"
	"elverra-club-backend/response"
	"fmt"
	"net/http"
	"strings"
)

// MemberResolver maps a verified firebase uid to a member id and role.
type MemberResolver func(ctx context.Context, db *sql.DB, firebaseID string) (int64, string, error)

// Authenticate verifies the bearer ID token and stores the resolved
// member id and role in the request context.
func Authenticate(f factory.Factory, resolve MemberResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			idToken := bearerToken(r)
			if idToken == "" {
				response.Unauthorized().Send(ctx, w)
				return
			}

			token, err := firebase.VerifyIDToken(ctx, f.FirebaseApp(ctx), idToken)
			if err != nil {
				logger.Errorf(ctx, "authenticate: unable to verify id token: %+v", err)
				response.Unauthorized().Send(ctx, w)
				return
			}

			memberID, role, err := resolve(ctx, f.DB(ctx), token.UID)
			if err != nil {
				logger.Errorf(ctx, "authenticate: unable to resolve member for uid %s: %+v", token.UID, err)
				response.MemberNotExist().Send(ctx, w)
				return
			}

			ctx = c.SetContextWithValue(ctx, c.ContextKeyMemberID, fmt.Sprintf("%d", memberID))
			ctx = c.SetContextWithValue(ctx, c.ContextKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose resolved role does not match.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.GetContextValue(r.Context(), c.ContextKeyRole) != role {
				response.Forbidden().Send(r.Context(), w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
