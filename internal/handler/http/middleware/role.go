package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
	"github.com/lokahr/attendance-backend-go/internal/handler/http/response"
)

// RequireManager requires manager or owner role. Manual entries, record
// edits, company-wide listings and correction reviews sit behind it.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		if !user.Role(roleStr).CanReviewAttendance() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
