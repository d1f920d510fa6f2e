package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"resto-erp-ws/internal/config"
	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"

	"golang.org/x/sync/errgroup"
)

const defaultFetchTimeout = 15 * time.Second

// Broadcaster receives a message whenever a new snapshot is committed.
type Broadcaster interface {
	Publish(message []byte)
}

type Options struct {
	// Repos is nil when the backend is not configured.
	Repos *repository.Repositories
	// ConfigErr explains why Repos is missing.
	ConfigErr    error
	Feed         ChangeFeed
	Broadcaster  Broadcaster
	FetchTimeout time.Duration
}

// Syncer keeps an in-memory snapshot of every table and re-reads all of
// them whenever any table changes. Fetch failures never escape: they are
// reported through Snapshot.Error.
type Syncer struct {
	repos        *repository.Repositories
	configErr    error
	feed         ChangeFeed
	broadcaster  Broadcaster
	fetchTimeout time.Duration

	current atomic.Pointer[Snapshot]

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	inflight int
	version  uint64

	closed   atomic.Bool
	baseCtx  context.Context
	cancel   context.CancelFunc
	subMu    sync.Mutex
	subs     []Subscription
	triggers sync.WaitGroup
}

// New builds a Syncer. It never fails: a missing backend yields a Syncer
// whose snapshot reports IsConfigured=false.
func New(opts Options) *Syncer {
	s := &Syncer{
		repos:        opts.Repos,
		configErr:    opts.ConfigErr,
		feed:         opts.Feed,
		broadcaster:  opts.Broadcaster,
		fetchTimeout: opts.FetchTimeout,
	}
	if s.repos == nil && s.configErr == nil {
		s.configErr = config.ErrNotConfigured
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = defaultFetchTimeout
	}
	s.baseCtx, s.cancel = context.WithCancel(context.Background())

	snap := &Snapshot{Tables: emptyTables(), IsConfigured: s.IsConfigured()}
	if s.IsConfigured() {
		snap.Loading = true
	} else {
		snap.Error = s.configErr.Error()
	}
	s.current.Store(snap)
	return s
}

func (s *Syncer) IsConfigured() bool {
	return s.configErr == nil
}

// Snapshot returns the most recently committed snapshot without blocking.
func (s *Syncer) Snapshot() *Snapshot {
	return s.current.Load()
}

// Start subscribes to every table's change channel and then performs the
// initial load, so no change between the two is missed. Each change
// triggers one full refresh.
func (s *Syncer) Start(ctx context.Context) error {
	if s.IsConfigured() && s.feed != nil {
		for _, table := range model.AllTables() {
			sub, err := s.feed.Subscribe(ctx, table, s.onChange)
			if err != nil {
				s.closeSubscriptions()
				return err
			}
			s.subMu.Lock()
			if s.closed.Load() {
				s.subMu.Unlock()
				sub.Close()
				return nil
			}
			s.subs = append(s.subs, sub)
			s.subMu.Unlock()
		}
		log.Printf("realtime: subscribed to %d tables", len(model.AllTables()))
	}
	s.Refresh(ctx)
	return nil
}

func (s *Syncer) onChange(c event.Change) {
	s.Trigger()
}

// Trigger starts a refresh in the background.
func (s *Syncer) Trigger() {
	s.subMu.Lock()
	if s.closed.Load() {
		s.subMu.Unlock()
		return
	}
	s.triggers.Add(1)
	s.subMu.Unlock()
	go func() {
		defer s.triggers.Done()
		s.Refresh(s.baseCtx)
	}()
}

// RefreshAsync starts a refresh and returns a channel that yields the
// resulting snapshot once it completes or fails.
func (s *Syncer) RefreshAsync(ctx context.Context) <-chan *Snapshot {
	done := make(chan *Snapshot, 1)
	go func() {
		done <- s.Refresh(ctx)
	}()
	return done
}

// Refresh re-reads all tables concurrently and swaps the snapshot in one
// step. On any read failure the previous tables are kept and Error is set.
// Results older than an already applied refresh are discarded.
func (s *Syncer) Refresh(ctx context.Context) *Snapshot {
	if s.closed.Load() {
		return s.Snapshot()
	}
	if !s.IsConfigured() {
		return s.commitUnconfigured()
	}

	seq := s.begin()
	tables, err := s.fetchAll(ctx)
	return s.finish(seq, tables, err)
}

func (s *Syncer) commitUnconfigured() *Snapshot {
	s.mu.Lock()
	next := *s.current.Load()
	next.Loading = false
	next.IsConnected = false
	next.Error = s.configErr.Error()
	s.current.Store(&next)
	s.mu.Unlock()
	return &next
}

func (s *Syncer) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.inflight++

	next := *s.current.Load()
	next.Loading = true
	next.Error = ""
	s.current.Store(&next)
	return s.seq
}

func (s *Syncer) finish(seq uint64, tables *Tables, err error) *Snapshot {
	s.mu.Lock()
	s.inflight--
	if s.closed.Load() {
		s.mu.Unlock()
		return s.Snapshot()
	}

	next := *s.current.Load()
	next.Loading = s.inflight > 0
	if seq < s.applied {
		s.current.Store(&next)
		s.mu.Unlock()
		return &next
	}

	s.applied = seq
	if err != nil {
		log.Printf("realtime: refresh failed: %v", err)
		next.Error = err.Error()
		next.IsConnected = false
	} else {
		next.Tables = *tables
		next.Error = ""
		next.IsConnected = true
		next.FetchedAt = time.Now()
	}
	s.version++
	next.Version = s.version
	s.current.Store(&next)
	s.mu.Unlock()

	s.broadcast(&next)
	return &next
}

func (s *Syncer) fetchAll(ctx context.Context) (*Tables, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var t Tables
	r := s.repos
	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, r.Outlets, &t.Outlets)
	fetch(gctx, g, r.Employees, &t.Employees)
	fetch(gctx, g, r.Products, &t.Products)
	fetch(gctx, g, r.Ingredients, &t.Ingredients)
	fetch(gctx, g, r.Sales, &t.Sales)
	fetch(gctx, g, r.Suppliers, &t.Suppliers)
	fetch(gctx, g, r.PurchaseOrders, &t.PurchaseOrders)
	fetch(gctx, g, r.Distributions, &t.Distributions)
	fetch(gctx, g, r.DailyChecklists, &t.DailyChecklists)
	fetch(gctx, g, r.ShiftReports, &t.ShiftReports)
	fetch(gctx, g, r.Candidates, &t.Candidates)
	fetch(gctx, g, r.Promotions, &t.Promotions)
	fetch(gctx, g, r.Assets, &t.Assets)
	fetch(gctx, g, r.CashFlow, &t.CashFlow)
	fetch(gctx, g, r.Users, &t.Users)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

func fetch[T any, U repository.Patch](ctx context.Context, g *errgroup.Group, repo repository.TableRepository[T, U], dst *[]T) {
	g.Go(func() error {
		rows, err := repo.List(ctx)
		if err != nil {
			return &FetchError{Table: repo.Table(), Err: err}
		}
		if rows == nil {
			rows = []T{}
		}
		*dst = rows
		return nil
	})
}

type snapshotEvent struct {
	Type        string `json:"type"`
	Version     uint64 `json:"version"`
	IsConnected bool   `json:"is_connected"`
	Error       string `json:"error,omitempty"`
}

func (s *Syncer) broadcast(snap *Snapshot) {
	if s.broadcaster == nil {
		return
	}
	msg, err := json.Marshal(snapshotEvent{
		Type:        "snapshot_updated",
		Version:     snap.Version,
		IsConnected: snap.IsConnected,
		Error:       snap.Error,
	})
	if err != nil {
		return
	}
	s.broadcaster.Publish(msg)
}

func (s *Syncer) closeSubscriptions() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
}

// Close tears down every subscription. Refreshes still running complete
// without touching the snapshot.
func (s *Syncer) Close() {
	s.subMu.Lock()
	if s.closed.Swap(true) {
		s.subMu.Unlock()
		return
	}
	s.subMu.Unlock()
	s.closeSubscriptions()
	s.cancel()
	s.triggers.Wait()
}
