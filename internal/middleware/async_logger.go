package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/guttosm/picking-service/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the number of entries waiting to be written.
	BufferSize int
	// NumWorkers is the number of goroutines writing batches.
	NumWorkers int
	// BatchSize is the largest batch a worker writes at once.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout is the timeout of a single batch insert.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the async logger defaults.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats counts log entries by outcome.
type AsyncLoggerStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// AsyncLogger batches request and audit entries and writes them with
// CreateLogs. A burst of scans costs one insert per batch instead of one per
// request. Log never blocks: entries are dropped when the buffer is full.
type AsyncLogger struct {
	loggingService service.LoggingService
	cfg            AsyncLoggerConfig
	entries        chan *model.LogEntry
	stop           chan struct{}
	wg             sync.WaitGroup
	stopOnce       sync.Once

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil without a logging service.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	cfg = withAsyncDefaults(cfg)

	al := &AsyncLogger{
		loggingService: loggingService,
		cfg:            cfg,
		entries:        make(chan *model.LogEntry, cfg.BufferSize),
		stop:           make(chan struct{}),
	}
	for range cfg.NumWorkers {
		al.wg.Add(1)
		go al.run()
	}
	return al
}

func withAsyncDefaults(cfg AsyncLoggerConfig) AsyncLoggerConfig {
	def := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	return cfg
}

func (al *AsyncLogger) run() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	add := func(entry *model.LogEntry) {
		batch = append(batch, entry)
		if len(batch) >= al.cfg.BatchSize {
			batch = al.flush(batch)
		}
	}

	for {
		select {
		case entry := <-al.entries:
			add(entry)
		case <-ticker.C:
			batch = al.flush(batch)
		case <-al.stop:
			for {
				select {
				case entry := <-al.entries:
					add(entry)
				default:
					al.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes batch and returns it emptied for reuse.
func (al *AsyncLogger) flush(batch []*model.LogEntry) []*model.LogEntry {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := len(batch)
	if err := al.loggingService.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(int64(n))
		metrics.RecordAuditLogs("error", n)
		log := logger.Logger()
		log.Warn().Err(err).Int("entries", n).Msg("failed to write log batch")
	} else {
		al.written.Add(int64(n))
		metrics.RecordAuditLogs("written", n)
	}
	return make([]*model.LogEntry, 0, al.cfg.BatchSize)
}

// Log queues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case al.entries <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		metrics.RecordAuditLogs("dropped", 1)
		return false
	}
}

// Stop writes what is queued and waits for the workers. Entries logged after
// Stop may be lost.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() {
		close(al.stop)
		al.wg.Wait()
	})
}

// Stats returns the entry counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the process-wide async logger, stopping any
// previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the process-wide async logger, or nil.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and removes the process-wide async logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
