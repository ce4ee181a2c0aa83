package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// Identity is the caller resolved from the bearer token.
type Identity struct {
	EmployeeID string
	Role       employee.Role
}

func (i Identity) IsManager() bool {
	return i.Role == employee.RoleManager
}

// IdentityFromContext returns the caller stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Verifier reads the token from the Authorization header, or from the jwt
// query parameter for EventSource clients that cannot set headers.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery)
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.Unauthorized(w, "Invalid token")
				return
			}

			employeeID, ok := claims[jwt.ClaimEmployeeID].(string)
			if !ok || employeeID == "" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			roleStr, _ := claims[jwt.ClaimRole].(string)
			role := employee.Role(roleStr)
			if !role.IsValid() {
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{EmployeeID: employeeID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
