package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/polyakovn/HMS-SchedulingService/internal/api/handlers"
	"github.com/polyakovn/HMS-SchedulingService/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

type callerContextKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладёт Caller в контекст.
// Аутентификацию выполняет API gateway - сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		caller := domain.Caller{
			UserID: userID,
			Role:   parseRole(r.Header.Get(headerUserRole)),
		}

		ctx := context.WithValue(r.Context(), callerContextKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext извлекает Caller из контекста запроса
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(domain.Caller)
	return caller, ok
}

func parseRole(raw string) domain.Role {
	switch domain.Role(raw) {
	case domain.RoleDoctor:
		return domain.RoleDoctor
	case domain.RoleAdmin:
		return domain.RoleAdmin
	default:
		return domain.RolePatient
	}
}
