package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
)

// Service verifies access tokens issued by the external identity service.
// GenerateAccessToken exists for integration tests and local tooling; the
// attendance engine itself never issues tokens to clients.
type Service interface {
	GenerateAccessToken(userID string, employeeID string, companyID string, role user.Role, ttl time.Duration) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type jwtService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &jwtService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *jwtService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *jwtService) GenerateAccessToken(userID string, employeeID string, companyID string, role user.Role, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id":     userID,
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        string(role),
		"type":        "access",
		"exp":         time.Now().Add(ttl).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
