// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/stretchr/testify/mock"
)

// MockOperatorTokenService is a mock of service.OperatorTokenService.
type MockOperatorTokenService struct {
	mock.Mock
}

// NewMockOperatorTokenService creates a mock whose expectations are asserted when t finishes.
func NewMockOperatorTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOperatorTokenService {
	m := &MockOperatorTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOperatorTokenService) Exchange(apiKey string, req dto.TokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(apiKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockOperatorTokenService) Issue(operatorID, name string, roles []string) (*dto.TokenResponse, error) {
	args := m.Called(operatorID, name, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockOperatorTokenService) Validate(tokenString string) (*dto.OperatorClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OperatorClaims), args.Error(1)
}
