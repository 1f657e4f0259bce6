package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/service/cache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrSessionNotFound is returned when no scanning session is open for a transfer.
	ErrSessionNotFound = errors.New("no open session for picking")
	// ErrPickingNotFound is returned when the transfer does not exist.
	ErrPickingNotFound = errors.New("picking not found")
	// ErrPickingClosed is returned when a done or cancelled transfer is edited.
	ErrPickingClosed = errors.New("picking is closed")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// PickingResult is the state of a session after an operation together with
// the notifications the operation produced.
type PickingResult struct {
	View          barcode.View
	Notifications []barcode.Notification
	// LineID is the virtual id of the line created by AddLine.
	LineID string
}

// DestinationChange describes a destination location change.
type DestinationChange struct {
	LocationID int64
	// MoveScannedOnly overrides the configured default when set.
	MoveScannedOnly *bool
}

// SourceChange describes a source location change.
type SourceChange struct {
	LocationID   int64
	AllPageLines bool
}

// PickingService runs one scanning session per open transfer.
type PickingService interface {
	ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error)
	Open(ctx context.Context, pickingID int64) (*PickingResult, error)
	View(ctx context.Context, pickingID int64) (*PickingResult, error)
	Scan(ctx context.Context, pickingID int64, code string) (*PickingResult, error)
	AddLine(ctx context.Context, pickingID int64, in barcode.LineInput) (*PickingResult, error)
	SetQuantity(ctx context.Context, pickingID int64, virtualID string, qty decimal.Decimal) (*PickingResult, error)
	RemoveLine(ctx context.Context, pickingID int64, virtualID string) (*PickingResult, error)
	SelectLine(ctx context.Context, pickingID int64, virtualID string) (*PickingResult, error)
	Save(ctx context.Context, pickingID int64) (*PickingResult, error)
	ChangeDestination(ctx context.Context, pickingID int64, change DestinationChange) (*PickingResult, error)
	ChangeSource(ctx context.Context, pickingID int64, change SourceChange) (*PickingResult, error)
	PutInPack(ctx context.Context, pickingID int64, opts barcode.PutInPackOptions) (*PickingResult, error)
	Validate(ctx context.Context, pickingID int64, backorder string) (*PickingResult, error)
	Cancel(ctx context.Context, pickingID int64) (*PickingResult, error)
	Exit(ctx context.Context, pickingID int64) (*PickingResult, error)
	NextPage(ctx context.Context, pickingID int64) (*PickingResult, error)
	PreviousPage(ctx context.Context, pickingID int64) (*PickingResult, error)
	ActiveSessions() int
	Close(ctx context.Context)
}

// PickingServiceConfig holds configuration for the picking service.
type PickingServiceConfig struct {
	Barcode       barcode.Config
	SessionSize   int
	SessionTTL    time.Duration
	SessionShards int
	// FlushTimeout bounds the save of an evicted session.
	FlushTimeout time.Duration
}

// NewPickingServiceConfig creates PickingServiceConfig from config.Config.
func NewPickingServiceConfig(cfg config.Config) PickingServiceConfig {
	return PickingServiceConfig{
		Barcode: barcode.Config{
			MoveScannedLineOnly: cfg.Barcode.MoveScannedLineOnly,
			PackagePrefix:       cfg.Barcode.PackagePrefix,
			GroupByPackage:      cfg.Barcode.GroupByPackage,
		},
		SessionSize:   cfg.Session.Size,
		SessionTTL:    cfg.Session.TTL,
		SessionShards: cfg.Session.Shards,
		FlushTimeout:  10 * time.Second,
	}
}

// session is the engine of one transfer with the notifications of its
// current operation. mu keeps an operation and the drain of its
// notifications together.
type session struct {
	mu     sync.Mutex
	engine *barcode.Engine
	notes  *barcode.Recorder
}

// PickingServiceImpl implements PickingService.
type PickingServiceImpl struct {
	store    repository.PickingRepositoryInterface
	entities *barcode.EntityCache
	sessions *cache.Sharded[*session]
	opening  singleflight.Group
	cfg      PickingServiceConfig
	log      zerolog.Logger
}

// NewPickingService creates a picking service. Sessions share one entity
// cache. A session evicted for capacity or idleness saves its pending edits.
func NewPickingService(store repository.PickingRepositoryInterface, cfg PickingServiceConfig) *PickingServiceImpl {
	if cfg.SessionSize <= 0 {
		cfg.SessionSize = 512
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 10 * time.Second
	}

	s := &PickingServiceImpl{
		store:    store,
		entities: barcode.NewEntityCache(store),
		cfg:      cfg,
		log:      logger.Component("picking_service"),
	}
	s.sessions = cache.New(cache.Options[*session]{
		Capacity: cfg.SessionSize,
		TTL:      cfg.SessionTTL,
		Shards:   cfg.SessionShards,
		OnEvict:  s.flush,
	})
	return s
}

// ListPickings lists transfers; an empty state lists the open ones.
func (s *PickingServiceImpl) ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.ListPickings(ctx, state, limit)
}

// Open opens a session on a transfer, or returns the one already open.
func (s *PickingServiceImpl) Open(ctx context.Context, pickingID int64) (*PickingResult, error) {
	sess, err := s.open(ctx, pickingID)
	if err != nil {
		return nil, err
	}
	return s.run(sess, func(*barcode.Engine) error { return nil })
}

// View returns the state of an open session.
func (s *PickingServiceImpl) View(_ context.Context, pickingID int64) (*PickingResult, error) {
	return s.with(pickingID, func(*barcode.Engine) error { return nil })
}

// Scan processes one raw barcode.
func (s *PickingServiceImpl) Scan(ctx context.Context, pickingID int64, code string) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.ProcessBarcode(ctx, code)
	})
}

// AddLine adds a line by hand.
func (s *PickingServiceImpl) AddLine(ctx context.Context, pickingID int64, in barcode.LineInput) (*PickingResult, error) {
	var vid string
	res, err := s.with(pickingID, func(e *barcode.Engine) error {
		var err error
		vid, err = e.AddLine(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.LineID = vid
	return res, nil
}

// SetQuantity overwrites the done quantity of a line.
func (s *PickingServiceImpl) SetQuantity(ctx context.Context, pickingID int64, virtualID string, qty decimal.Decimal) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.SetQuantity(ctx, virtualID, qty)
	})
}

// RemoveLine removes a line.
func (s *PickingServiceImpl) RemoveLine(_ context.Context, pickingID int64, virtualID string) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.RemoveLine(virtualID)
	})
}

// SelectLine selects a line.
func (s *PickingServiceImpl) SelectLine(_ context.Context, pickingID int64, virtualID string) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.SelectLine(virtualID)
	})
}

// Save sends the pending edits.
func (s *PickingServiceImpl) Save(ctx context.Context, pickingID int64) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.Save(ctx)
	})
}

// ChangeDestination retargets lines to another destination location.
func (s *PickingServiceImpl) ChangeDestination(ctx context.Context, pickingID int64, change DestinationChange) (*PickingResult, error) {
	moveScannedOnly := s.cfg.Barcode.MoveScannedLineOnly
	if change.MoveScannedOnly != nil {
		moveScannedOnly = *change.MoveScannedOnly
	}
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.ChangeDestinationLocation(ctx, change.LocationID, moveScannedOnly)
	})
}

// ChangeSource changes the source location of the selected or page lines.
func (s *PickingServiceImpl) ChangeSource(ctx context.Context, pickingID int64, change SourceChange) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.ChangeSourceLocation(ctx, change.LocationID, change.AllPageLines)
	})
}

// PutInPack puts the done lines of the current page in a new package.
func (s *PickingServiceImpl) PutInPack(ctx context.Context, pickingID int64, opts barcode.PutInPackOptions) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		_, err := e.PutInPack(ctx, opts)
		return err
	})
}

// Validate validates the transfer. backorder answers a backorder wizard.
func (s *PickingServiceImpl) Validate(ctx context.Context, pickingID int64, backorder string) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		_, err := e.Validate(ctx, backorder)
		return err
	})
}

// Cancel cancels the transfer.
func (s *PickingServiceImpl) Cancel(ctx context.Context, pickingID int64) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.Cancel(ctx)
	})
}

// Exit saves and closes the session. A session whose save failed stays open.
func (s *PickingServiceImpl) Exit(ctx context.Context, pickingID int64) (*PickingResult, error) {
	sess, ok := s.sessions.Get(pickingID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	res, err := s.run(sess, func(e *barcode.Engine) error {
		return e.Exit(ctx)
	})
	if err != nil {
		return nil, err
	}
	if sess.engine.Exited() {
		s.sessions.Invalidate(pickingID)
		metrics.SetSessionsActive(s.sessions.Len())
		s.log.Debug().Int64("picking_id", pickingID).Msg("session closed")
	}
	return res, nil
}

// NextPage moves to the next page.
func (s *PickingServiceImpl) NextPage(ctx context.Context, pickingID int64) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.NextPage(ctx)
	})
}

// PreviousPage moves to the previous page.
func (s *PickingServiceImpl) PreviousPage(ctx context.Context, pickingID int64) (*PickingResult, error) {
	return s.with(pickingID, func(e *barcode.Engine) error {
		return e.PreviousPage(ctx)
	})
}

// ActiveSessions returns the number of open sessions.
func (s *PickingServiceImpl) ActiveSessions() int {
	return s.sessions.Len()
}

// Close saves the pending edits of every session and stops the session cache.
func (s *PickingServiceImpl) Close(ctx context.Context) {
	s.sessions.Range(func(id int64, sess *session) {
		if ctx.Err() != nil {
			return
		}
		s.flush(id, sess)
	})
	s.sessions.Stop()
	s.sessions.Clear()
	metrics.SetSessionsActive(0)
}

func (s *PickingServiceImpl) open(ctx context.Context, pickingID int64) (*session, error) {
	if sess, ok := s.sessions.Get(pickingID); ok {
		return sess, nil
	}

	v, err, _ := s.opening.Do(strconv.FormatInt(pickingID, 10), func() (interface{}, error) {
		if sess, ok := s.sessions.Get(pickingID); ok {
			return sess, nil
		}
		notes := &barcode.Recorder{}
		e, err := barcode.Open(ctx, s.store, pickingID,
			barcode.WithNotifier(notes),
			barcode.WithCache(s.entities),
			barcode.WithConfig(s.cfg.Barcode),
			barcode.WithLogger(logger.ForPicking(pickingID)),
		)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %d", ErrPickingNotFound, pickingID)
			}
			return nil, err
		}
		sess := &session{engine: e, notes: notes}
		s.sessions.Set(pickingID, sess)
		metrics.SetSessionsActive(s.sessions.Len())
		l := logger.FromContext(ctx)
		l.Debug().Str("component", "picking_service").Int64("picking_id", pickingID).Msg("session opened")
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*session), nil
}

// with runs op on the open session of a transfer.
func (s *PickingServiceImpl) with(pickingID int64, op func(e *barcode.Engine) error) (*PickingResult, error) {
	sess, ok := s.sessions.Get(pickingID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.run(sess, op)
}

func (s *PickingServiceImpl) run(sess *session, op func(e *barcode.Engine) error) (*PickingResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	err := op(sess.engine)
	notes := sess.notes.Drain()
	if err != nil {
		if errors.Is(err, barcode.ErrClosed) {
			return nil, fmt.Errorf("%w: %w", ErrPickingClosed, err)
		}
		return nil, err
	}
	return &PickingResult{
		View:          sess.engine.View(),
		Notifications: notes,
	}, nil
}

// flush saves the pending edits of a session leaving the cache.
func (s *PickingServiceImpl) flush(pickingID int64, sess *session) {
	defer metrics.SetSessionsActive(s.sessions.Len())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.engine.Exited() || sess.engine.PendingCommand().IsEmpty() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
	defer cancel()
	err := sess.engine.Save(ctx)
	notes := sess.notes.Drain()
	if err != nil && !errors.Is(err, barcode.ErrClosed) {
		s.log.Error().Err(err).Int64("picking_id", pickingID).Msg("flush of evicted session failed")
		return
	}
	for _, n := range notes {
		if n.Type == barcode.NotifyDanger {
			s.log.Warn().Int64("picking_id", pickingID).Str("key", n.Key).Interface("args", n.Args).Msg("evicted session not saved")
			return
		}
	}
	s.log.Info().Int64("picking_id", pickingID).Msg("evicted session saved")
}
