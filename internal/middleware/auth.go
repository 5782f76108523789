package middleware

import (
	"net/http"
	"strings"

	"arkfleet/opsboard/internal/auth"
	"arkfleet/opsboard/internal/db/repositories"
)

// AuthMiddleware resolves the caller's claims from either a bearer token or
// an API key. Requests with neither are rejected before routing continues.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				parsed, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					http.Error(w, "Unauthorized. Invalid Token", http.StatusUnauthorized)
					return
				}
				claims = parsed

			case apiKey != "":
				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.IsActive {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				role := auth.Role(keyRes.Role)
				if role == "" {
					role = auth.RoleViewer
				}
				claims = &auth.APIKeyClaims{KeyValue: keyRes.Key, RoleValue: role}

			default:
				http.Error(w, "Unauthorized. Missing Credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a subtree on one named action.
func RequirePermission(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil || !claims.HasPermission(action) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
