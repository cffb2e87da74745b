package authctx

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
)

// Identity is the authenticated caller extracted from the verified JWT.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

// FromContext reads the caller identity out of the jwtauth claims placed on
// the request context by the verifier middleware.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ := claims["user_id"].(string)

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, user.ErrCompanyIDRequired
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, user.ErrEmployeeIDRequired
	}

	role, _ := claims["role"].(string)

	return Identity{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}
