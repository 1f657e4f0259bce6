package middleware

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// batchRecorder collects the batches handed to CreateLogs.
type batchRecorder struct {
	mu      sync.Mutex
	batches [][]*model.LogEntry
}

func (r *batchRecorder) record(args mock.Arguments) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, args.Get(1).([]*model.LogEntry))
}

func (r *batchRecorder) sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	sizes := make([]int, len(r.batches))
	for i, b := range r.batches {
		sizes[i] = len(b)
	}
	return sizes
}

func scanEntry(pickingID int64) *model.LogEntry {
	return &model.LogEntry{Level: "info", Message: "HTTP request", Path: "/api/pickings/1/scan", PickingID: pickingID}
}

func TestNewAsyncLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      AsyncLoggerConfig
		expected AsyncLoggerConfig
	}{
		{
			name:     "zero config falls back to defaults",
			cfg:      AsyncLoggerConfig{},
			expected: DefaultAsyncLoggerConfig(),
		},
		{
			name: "explicit config is kept",
			cfg: AsyncLoggerConfig{
				BufferSize:    10,
				NumWorkers:    1,
				BatchSize:     5,
				FlushInterval: time.Second,
				WriteTimeout:  time.Second,
			},
			expected: AsyncLoggerConfig{
				BufferSize:    10,
				NumWorkers:    1,
				BatchSize:     5,
				FlushInterval: time.Second,
				WriteTimeout:  time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			al := NewAsyncLogger(mocks.NewMockLoggingService(t), tt.cfg)
			require.NotNil(t, al)
			defer al.Stop()

			assert.Equal(t, tt.expected, al.cfg)
			assert.Equal(t, tt.expected.BufferSize, cap(al.entries))
		})
	}

	t.Run("nil logging service", func(t *testing.T) {
		assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
	})
}

func TestAsyncLogger_BatchesBySize(t *testing.T) {
	rec := &batchRecorder{}
	svc := mocks.NewMockLoggingService(t)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(rec.record).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		BufferSize:    20,
		NumWorkers:    1,
		BatchSize:     3,
		FlushInterval: time.Hour,
	})

	for i := range 7 {
		require.True(t, al.Log(scanEntry(int64(i))))
	}
	al.Stop()

	assert.Equal(t, []int{3, 3, 1}, rec.sizes())
	assert.Equal(t, AsyncLoggerStats{Enqueued: 7, Written: 7}, al.Stats())
}

func TestAsyncLogger_FlushesPartialBatchOnInterval(t *testing.T) {
	written := make(chan int, 1)
	svc := mocks.NewMockLoggingService(t)
	svc.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written <- len(args.Get(1).([]*model.LogEntry)) }).
		Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		NumWorkers:    1,
		BatchSize:     100,
		FlushInterval: 20 * time.Millisecond,
	})
	defer al.Stop()

	al.Log(scanEntry(1))
	al.Log(scanEntry(1))

	select {
	case n := <-written:
		assert.Equal(t, 2, n)
	case <-time.After(2 * time.Second):
		t.Fatal("partial batch was not flushed")
	}
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	svc := mocks.NewMockLoggingService(t)
	svc.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{
		BufferSize:    1,
		NumWorkers:    1,
		BatchSize:     1,
		FlushInterval: time.Hour,
	})

	// The worker blocks writing the first entry, the second fills the buffer.
	require.True(t, al.Log(scanEntry(1)))
	require.Eventually(t, func() bool { return len(al.entries) == 0 }, time.Second, time.Millisecond)
	require.True(t, al.Log(scanEntry(2)))
	assert.False(t, al.Log(scanEntry(3)))

	close(release)
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(1), stats.Dropped)
	assert.Equal(t, int64(2), stats.Written)
}

func TestAsyncLogger_CountsFailedBatches(t *testing.T) {
	svc := mocks.NewMockLoggingService(t)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(errors.New("logs store down"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 2, FlushInterval: time.Hour})
	al.Log(scanEntry(1))
	al.Log(scanEntry(2))
	al.Log(scanEntry(3))
	al.Stop()

	assert.Equal(t, AsyncLoggerStats{Enqueued: 3, Failed: 3}, al.Stats())
}

func TestAsyncLogger_StopIsIdempotent(t *testing.T) {
	al := NewAsyncLogger(mocks.NewMockLoggingService(t), DefaultAsyncLoggerConfig())

	assert.NotPanics(t, func() {
		al.Stop()
		al.Stop()
	})
}

func TestGlobalAsyncLogger(t *testing.T) {
	assert.Nil(t, GetAsyncLogger())

	first := mocks.NewMockLoggingService(t)
	first.On("CreateLogs", mock.Anything, mock.Anything).Return(nil).Once()
	second := mocks.NewMockLoggingService(t)

	InitAsyncLogger(first, DefaultAsyncLoggerConfig())
	installed := GetAsyncLogger()
	require.NotNil(t, installed)
	installed.Log(scanEntry(9))

	// Replacing the logger flushes the previous one.
	InitAsyncLogger(second, DefaultAsyncLoggerConfig())
	assert.NotSame(t, installed, GetAsyncLogger())
	assert.Equal(t, int64(1), installed.Stats().Written)

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
	StopAsyncLogger()
}
