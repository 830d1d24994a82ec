package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
)

const (
	msgMissingToken = "требуется токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgStaffOnly    = "доступно только персоналу"
)

type principalKey struct{}

// Principal аутентифицированный субъект запроса
type Principal struct {
	SubjectID string
	IsStaff   bool
}

// Claims полезная нагрузка токена
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer JWT (HS256) и кладет Principal в контекст запроса
func Auth(secret string, staffRole string) func(http.Handler) http.Handler {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.Subject == "" {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			principal := Principal{SubjectID: claims.Subject}
			for _, role := range claims.Roles {
				if role == staffRole {
					principal.IsStaff = true
					break
				}
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff пропускает только запросы с ролью персонала.
// Должен стоять после Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}
		if !principal.IsStaff {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext достает Principal, положенный Auth middleware
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
