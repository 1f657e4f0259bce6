//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogsRepository struct {
	mock.Mock
}

func (m *mockLogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockLogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	entries, _ := args.Get(0).([]model.LogEntry)
	return entries, args.Error(1)
}

func (m *mockLogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

func TestLoggingService_CreateLog(t *testing.T) {
	t.Run("stores the entry as given", func(t *testing.T) {
		repo := new(mockLogsRepository)
		entry := &model.LogEntry{Level: "info", Message: "scan", OperatorID: "op-1", PickingID: 7, ActionType: "scan"}
		repo.On("Create", mock.Anything, entry).Return(nil)

		require.NoError(t, NewLoggingService(repo).CreateLog(context.Background(), entry))
		repo.AssertExpectations(t)
	})

	t.Run("nil entry is ignored", func(t *testing.T) {
		repo := new(mockLogsRepository)
		require.NoError(t, NewLoggingService(repo).CreateLog(context.Background(), nil))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		repo := new(mockLogsRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))

		err := NewLoggingService(repo).CreateLog(context.Background(), &model.LogEntry{})
		assert.EqualError(t, err, "write failed")
	})
}

func TestLoggingService_CreateLogs(t *testing.T) {
	a := &model.LogEntry{Message: "a"}
	b := &model.LogEntry{Message: "b"}

	tests := []struct {
		name    string
		entries []*model.LogEntry
		want    []*model.LogEntry
		repoErr error
		wantErr bool
	}{
		{name: "batch", entries: []*model.LogEntry{a, b}, want: []*model.LogEntry{a, b}},
		{name: "nil entries are skipped", entries: []*model.LogEntry{nil, a, nil}, want: []*model.LogEntry{a}},
		{name: "empty batch", entries: nil},
		{name: "only nil entries", entries: []*model.LogEntry{nil}},
		{name: "repository error", entries: []*model.LogEntry{a}, want: []*model.LogEntry{a}, repoErr: errors.New("down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			if tt.want != nil {
				repo.On("CreateMany", mock.Anything, tt.want).Return(tt.repoErr)
			}

			err := NewLoggingService(repo).CreateLogs(context.Background(), tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.want == nil {
				repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_QueryLogs(t *testing.T) {
	tests := []struct {
		name      string
		opts      model.LogQueryOptions
		wantLimit int
		wantSkip  int
	}{
		{name: "keeps a valid page", opts: model.LogQueryOptions{Limit: 20, Skip: 40}, wantLimit: 20, wantSkip: 40},
		{name: "zero limit gets the cap", opts: model.LogQueryOptions{}, wantLimit: maxLogQueryLimit},
		{name: "oversized limit is clamped", opts: model.LogQueryOptions{Limit: 10_000}, wantLimit: maxLogQueryLimit},
		{name: "negative skip is reset", opts: model.LogQueryOptions{Limit: 5, Skip: -3}, wantLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockLogsRepository)
			found := []model.LogEntry{{Message: "scan", PickingID: 7}}
			repo.On("Query", mock.Anything, mock.MatchedBy(func(o model.LogQueryOptions) bool {
				return o.Limit == tt.wantLimit && o.Skip == tt.wantSkip
			})).Return(found, nil)

			entries, err := NewLoggingService(repo).QueryLogs(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, found, entries)
			repo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockLogsRepository)
		repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		entries, err := NewLoggingService(repo).QueryLogs(context.Background(), model.LogQueryOptions{})
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestLoggingService_CountLogs(t *testing.T) {
	repo := new(mockLogsRepository)
	opts := model.LogQueryOptions{OperatorID: "op-1", ActionType: "validate"}
	repo.On("Count", mock.Anything, opts).Return(int64(3), nil)

	count, err := NewLoggingService(repo).CountLogs(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
