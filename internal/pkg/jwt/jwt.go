package jwt

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim keys carried by access tokens.
const (
	ClaimEmployeeID = "employee_id"
	ClaimRole       = "role"
	ClaimType       = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth        *jwtauth.JWTAuth
	accessExpiration time.Duration
	now              func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessExpiration time.Duration) Service {
	return &JWTService{
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		accessExpiration: accessExpiration,
		now:              time.Now,
	}
}

// GenerateAccessToken signs a bearer token for the employee. Tokens are only
// minted by the developer CLI; the API verifies them.
func (j *JWTService) GenerateAccessToken(employeeID string, role employee.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessExpiration).Unix()

	claims := map[string]interface{}{
		ClaimEmployeeID: employeeID,
		ClaimRole:       string(role),
		ClaimType:       TokenTypeAccess,
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
