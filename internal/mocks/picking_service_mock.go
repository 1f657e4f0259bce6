// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPickingService is a mock of service.PickingService.
type MockPickingService struct {
	mock.Mock
}

// NewMockPickingService creates a mock whose expectations are asserted when t finishes.
func NewMockPickingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPickingService {
	m := &MockPickingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func result(args mock.Arguments) (*service.PickingResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PickingResult), args.Error(1)
}

func (m *MockPickingService) ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error) {
	args := m.Called(ctx, state, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Picking), args.Error(1)
}

func (m *MockPickingService) Open(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) View(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) Scan(ctx context.Context, pickingID int64, code string) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, code))
}

func (m *MockPickingService) AddLine(ctx context.Context, pickingID int64, in barcode.LineInput) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, in))
}

func (m *MockPickingService) SetQuantity(ctx context.Context, pickingID int64, virtualID string, qty decimal.Decimal) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, virtualID, qty))
}

func (m *MockPickingService) RemoveLine(ctx context.Context, pickingID int64, virtualID string) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, virtualID))
}

func (m *MockPickingService) SelectLine(ctx context.Context, pickingID int64, virtualID string) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, virtualID))
}

func (m *MockPickingService) Save(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) ChangeDestination(ctx context.Context, pickingID int64, change service.DestinationChange) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, change))
}

func (m *MockPickingService) ChangeSource(ctx context.Context, pickingID int64, change service.SourceChange) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, change))
}

func (m *MockPickingService) PutInPack(ctx context.Context, pickingID int64, opts barcode.PutInPackOptions) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, opts))
}

func (m *MockPickingService) Validate(ctx context.Context, pickingID int64, backorder string) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID, backorder))
}

func (m *MockPickingService) Cancel(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) Exit(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) NextPage(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) PreviousPage(ctx context.Context, pickingID int64) (*service.PickingResult, error) {
	return result(m.Called(ctx, pickingID))
}

func (m *MockPickingService) ActiveSessions() int {
	return m.Called().Int(0)
}

func (m *MockPickingService) Close(ctx context.Context) {
	m.Called(ctx)
}
