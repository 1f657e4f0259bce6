package dto

import "strings"

// Operator roles.
const (
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
)

// TokenRequest is the JSON request body of the token endpoint. The caller
// authenticates with an API key and names the operator at the scanner.
//
// @Description Request an access token for a scanner operator
// @Example {"operator_id": "op-17", "name": "Ana", "roles": ["operator"]}
type TokenRequest struct {
	// OperatorID identifies the operator in audit logs.
	OperatorID string `json:"operator_id" binding:"required" example:"op-17"`
	// Name is the display name of the operator.
	Name string `json:"name,omitempty" example:"Ana"`
	// Roles defaults to operator.
	Roles []string `json:"roles,omitempty" example:"operator"`
} // @name TokenRequest

// TokenResponse is the JSON response body of the token endpoint.
//
// @Description Issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"43200"`
} // @name TokenResponse

// OperatorClaims are the application claims of an operator token.
type OperatorClaims struct {
	OperatorID string   `json:"operator_id"`
	Name       string   `json:"name,omitempty"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the claims carry one of roles.
func (c *OperatorClaims) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Validate performs custom validation on the token request.
func (r *TokenRequest) Validate() error {
	if strings.TrimSpace(r.OperatorID) == "" {
		return &ValidationError{
			Field:   "operator_id",
			Message: "operator_id is required",
		}
	}
	for _, role := range r.Roles {
		if role != RoleOperator && role != RoleSupervisor {
			return &ValidationError{
				Field:   "roles",
				Message: "unknown role " + role,
			}
		}
	}
	return nil
}
