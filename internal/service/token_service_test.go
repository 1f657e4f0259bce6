//go:build !integration

package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *OperatorTokenServiceImpl {
	return NewOperatorTokenService(TokenConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: time.Hour,
		APIKeys:        map[string]bool{"scanner-key": true},
	})
}

func TestNewTokenConfigFromAuthConfig(t *testing.T) {
	cfg := NewTokenConfigFromAuthConfig(config.AuthConfig{
		JWTSecretKey:   "s",
		AccessTokenTTL: time.Minute,
		APIKeys:        map[string]bool{"k": true},
	})

	assert.Equal(t, "s", cfg.SecretKey)
	assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.APIKeys["k"])
}

func TestOperatorTokenService_IssueAndValidate(t *testing.T) {
	s := newTestTokenService()

	tok, err := s.Issue("op-17", "Ana", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := s.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "op-17", claims.OperatorID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, []string{dto.RoleOperator}, claims.Roles)
}

func TestOperatorTokenService_Issue_EmptyOperator(t *testing.T) {
	_, err := newTestTokenService().Issue("", "", nil)
	assert.Error(t, err)
}

func TestOperatorTokenService_Validate(t *testing.T) {
	s := newTestTokenService()
	valid, err := s.Issue("op-1", "", []string{dto.RoleSupervisor})
	require.NoError(t, err)

	other := NewOperatorTokenService(TokenConfig{SecretKey: "other-secret"})
	foreign, err := other.Issue("op-1", "", nil)
	require.NoError(t, err)

	expiring := newTestTokenService()
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiring.Issue("op-1", "", nil)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"operator_id": "op-1", "iss": tokenIssuer})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", valid.AccessToken, false},
		{"garbage", "not-a-token", true},
		{"wrong secret", foreign.AccessToken, true},
		{"expired", expired.AccessToken, true},
		{"unsigned", unsigned, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := s.Validate(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.True(t, claims.HasRole(dto.RoleSupervisor))
		})
	}
}

func TestOperatorTokenService_Exchange(t *testing.T) {
	tests := []struct {
		name    string
		apiKeys map[string]bool
		key     string
		req     dto.TokenRequest
		wantErr error
	}{
		{
			name:    "known key",
			apiKeys: map[string]bool{"scanner-key": true},
			key:     "scanner-key",
			req:     dto.TokenRequest{OperatorID: "op-1"},
		},
		{
			name:    "unknown key",
			apiKeys: map[string]bool{"scanner-key": true},
			key:     "nope",
			req:     dto.TokenRequest{OperatorID: "op-1"},
			wantErr: ErrInvalidAPIKey,
		},
		{
			name: "no keys configured",
			key:  "",
			req:  dto.TokenRequest{OperatorID: "op-1", Roles: []string{dto.RoleSupervisor}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOperatorTokenService(TokenConfig{SecretKey: "k", APIKeys: tt.apiKeys})
			tok, err := s.Exchange(tt.key, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			claims, err := s.Validate(tok.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.req.OperatorID, claims.OperatorID)
		})
	}

	t.Run("invalid request", func(t *testing.T) {
		s := NewOperatorTokenService(TokenConfig{SecretKey: "k"})
		_, err := s.Exchange("", dto.TokenRequest{OperatorID: "op-1", Roles: []string{"admin"}})
		var verr *dto.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
