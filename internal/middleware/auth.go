package middleware

import (
	"net/http"

	"kisaan-be/internal/auth"
	"kisaan-be/internal/transport"
	"kisaan-be/internal/user"
)

// Authenticate parses the access token (if present) and injects the
// principal into the request context. Requests without a token pass through
// anonymously; role checks happen in RequireRole.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects requests whose principal is missing or does not carry
// one of the allowed roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
				transport.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role := auth.GetUserRoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			transport.Error(w, http.StatusForbidden, "insufficient role")
		})
	}
}
