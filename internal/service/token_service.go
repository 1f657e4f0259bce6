package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/domain/dto"
)

var (
	// ErrInvalidToken is returned when a token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidAPIKey is returned when a token is requested with an unknown API key.
	ErrInvalidAPIKey = errors.New("invalid api key")
)

const tokenIssuer = "picking-service"

// operatorJWTClaims extends dto.OperatorClaims with the registered JWT claims.
type operatorJWTClaims struct {
	dto.OperatorClaims
	jwt.RegisteredClaims
}

// OperatorTokenService issues and validates the access tokens of scanner operators.
type OperatorTokenService interface {
	// Exchange issues a token for the operator of a request authenticated by apiKey.
	Exchange(apiKey string, req dto.TokenRequest) (*dto.TokenResponse, error)
	// Issue signs a token for an operator.
	Issue(operatorID, name string, roles []string) (*dto.TokenResponse, error)
	// Validate parses a token and returns its claims.
	Validate(tokenString string) (*dto.OperatorClaims, error)
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	// APIKeys may exchange an operator id for a token. Nil accepts any key.
	APIKeys map[string]bool
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:      authConfig.JWTSecretKey,
		AccessTokenTTL: authConfig.AccessTokenTTL,
		APIKeys:        authConfig.APIKeys,
	}
}

// OperatorTokenServiceImpl implements OperatorTokenService with HS256 tokens.
type OperatorTokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	apiKeys   map[string]bool
	now       func() time.Time
}

// NewOperatorTokenService creates a new token service.
func NewOperatorTokenService(cfg TokenConfig) *OperatorTokenServiceImpl {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &OperatorTokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		apiKeys:   cfg.APIKeys,
		now:       time.Now,
	}
}

// Exchange issues a token for the operator of a request authenticated by apiKey.
func (s *OperatorTokenServiceImpl) Exchange(apiKey string, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if len(s.apiKeys) > 0 && !s.apiKeys[apiKey] {
		return nil, ErrInvalidAPIKey
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.Issue(req.OperatorID, req.Name, req.Roles)
}

// Issue signs a token for an operator. An operator without roles gets the
// operator role.
func (s *OperatorTokenServiceImpl) Issue(operatorID, name string, roles []string) (*dto.TokenResponse, error) {
	if operatorID == "" {
		return nil, errors.New("operator id is empty, cannot create token")
	}
	if len(roles) == 0 {
		roles = []string{dto.RoleOperator}
	}

	issuedAt := s.now()
	claims := &operatorJWTClaims{
		OperatorClaims: dto.OperatorClaims{
			OperatorID: operatorID,
			Name:       name,
			Roles:      roles,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   operatorID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

// Validate parses a token and returns its claims.
func (s *OperatorTokenServiceImpl) Validate(tokenString string) (*dto.OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &operatorJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*operatorJWTClaims)
	if !ok || !token.Valid || claims.OperatorID == "" {
		return nil, ErrInvalidToken
	}
	return &claims.OperatorClaims, nil
}
