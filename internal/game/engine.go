package game

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/verte-zerg/neontype/internal/model"
)

// ErrStopped is returned by commands sent to an engine whose loop has exited.
var ErrStopped = errors.New("game engine stopped")

type commandKind int

const (
	cmdStart commandKind = iota
	cmdSubmit
	cmdEnd
)

type command struct {
	kind  commandKind
	input string
	reply chan model.Snapshot
}

// Engine serializes every session mutation through a single goroutine.
// Commands, the metrics ticker, the drain ticker and the overdrive timer all
// feed the same loop, so each transition runs to completion before the next.
type Engine struct {
	session *Session
	best    BestStore
	bus     *Bus
	clock   Clock
	tuning  model.Tuning

	inbox chan command
	done  chan struct{}
	snap  atomic.Pointer[model.Snapshot]

	// Owned by the loop goroutine.
	metrics   *time.Ticker
	drain     *time.Ticker
	overdrive *time.Timer
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning overrides the default tuning.
func WithTuning(t model.Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithClock overrides the wall clock used for elapsed time.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithBus publishes notifications on an existing bus.
func WithBus(b *Bus) Option {
	return func(e *Engine) {
		e.bus = b
	}
}

// New constructs an idle engine. Call Run to start its loop.
func New(source WordSource, best BestStore, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("word source is required")
	}
	if best == nil {
		return nil, fmt.Errorf("best store is required")
	}
	e := &Engine{
		best:   best,
		clock:  systemClock{},
		tuning: model.DefaultTuning(),
		inbox:  make(chan command, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	if e.bus == nil {
		e.bus = NewBus()
	}
	e.session = NewSession(source, e.tuning)
	e.publish()
	return e, nil
}

// Subscribe registers a notification listener. See Bus.Subscribe.
func (e *Engine) Subscribe(buffer int) (<-chan Event, func()) {
	return e.bus.Subscribe(buffer)
}

// Snapshot returns the latest published session state.
func (e *Engine) Snapshot() model.Snapshot {
	return *e.snap.Load()
}

// Done is closed once Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Start begins a new session, replacing any current one.
func (e *Engine) Start(ctx context.Context) (model.Snapshot, error) {
	return e.do(ctx, command{kind: cmdStart})
}

// Submit applies the cumulative input buffer for the current word.
func (e *Engine) Submit(ctx context.Context, buf string) (model.Snapshot, error) {
	return e.do(ctx, command{kind: cmdSubmit, input: buf})
}

// End aborts the current session.
func (e *Engine) End(ctx context.Context) (model.Snapshot, error) {
	return e.do(ctx, command{kind: cmdEnd})
}

// Run processes commands and timers until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)
	defer e.bus.Close()
	defer e.disarm()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.inbox:
			e.handle(ctx, cmd)
		case <-tickerC(e.metrics):
			e.session.Tick(e.clock.Now())
			e.publish()
		case <-tickerC(e.drain):
			if e.session.Drain() {
				e.finish(ctx)
				continue
			}
			e.publish()
		case <-timerC(e.overdrive):
			e.overdrive = nil
			events := e.session.ExpireOverdrive()
			e.publish(events...)
		}
	}
}

func (e *Engine) do(ctx context.Context, cmd command) (model.Snapshot, error) {
	cmd.reply = make(chan model.Snapshot, 1)
	select {
	case e.inbox <- cmd:
	case <-e.done:
		return e.Snapshot(), ErrStopped
	case <-ctx.Done():
		return e.Snapshot(), ctx.Err()
	}
	select {
	case snap := <-cmd.reply:
		return snap, nil
	case <-e.done:
		return e.Snapshot(), ErrStopped
	case <-ctx.Done():
		return e.Snapshot(), ctx.Err()
	}
}

func (e *Engine) handle(ctx context.Context, cmd command) {
	switch cmd.kind {
	case cmdStart:
		e.disarm()
		best, ok, err := LoadBest(ctx, e.best)
		e.session.SetBest(best, ok, false)
		e.session.SetStoreErr(err)
		e.session.Start(e.clock.Now())
		e.metrics = time.NewTicker(e.tuning.MetricsInterval)
		e.drain = time.NewTicker(e.tuning.DrainInterval)
		e.publish()
	case cmdSubmit:
		events := e.session.Submit(cmd.input)
		for _, ev := range events {
			if ev.Kind == EventOverdriveStart {
				e.armOverdrive()
			}
		}
		e.publish(events...)
	case cmdEnd:
		e.finish(ctx)
	}
	cmd.reply <- e.Snapshot()
}

// finish ends the session, settles the best record and publishes game over.
func (e *Engine) finish(ctx context.Context) {
	if e.session.Status() != model.StatusPlaying {
		return
	}
	e.disarm()
	now := e.clock.Now()
	events := e.session.Finish(now)
	best, ok, written, err := UpdateBest(ctx, e.best, e.session.Record(now))
	e.session.SetBest(best, ok, written)
	e.session.SetStoreErr(err)
	for i := range events {
		if events[i].Kind == EventGameOver {
			events[i].NewBest = written
		}
	}
	e.publish(events...)
}

func (e *Engine) armOverdrive() {
	if e.overdrive != nil {
		e.overdrive.Stop()
	}
	e.overdrive = time.NewTimer(e.tuning.OverdriveDuration)
}

// disarm stops every timer. The loop only selects on the current timers,
// so a stopped generation can never fire into a later session.
func (e *Engine) disarm() {
	if e.metrics != nil {
		e.metrics.Stop()
		e.metrics = nil
	}
	if e.drain != nil {
		e.drain.Stop()
		e.drain = nil
	}
	if e.overdrive != nil {
		e.overdrive.Stop()
		e.overdrive = nil
	}
}

// publish stores a fresh snapshot, then emits events, so listeners that pull
// on notification see the state that produced it.
func (e *Engine) publish(events ...Event) {
	snap := e.session.Snapshot()
	e.snap.Store(&snap)
	for _, ev := range events {
		e.bus.Publish(ev)
	}
}

func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
