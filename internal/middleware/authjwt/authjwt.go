package authjwt

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"mailblast/internal/lib/api/response"
	"mailblast/internal/lib/jwt"
	sl "mailblast/internal/lib/logger"

	"github.com/go-chi/render"
)

type ctxKey struct{}

// New rejects requests lacking a valid bearer token before the
// protected handler runs. The user id lands on the request context.
func New(log *slog.Logger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.authjwt.New"

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Authorization token required"))

				return
			}

			uid, err := jwt.ParseToken(token, secret)
			if err != nil {
				log.Warn("rejected token",
					slog.String("op", op),
					sl.Err(err),
				)

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid or expired token"))

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, uid)))
		})
	}
}

// UserID returns the authenticated user id placed by the middleware.
func UserID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(ctxKey{}).(int64)
	return uid, ok
}
