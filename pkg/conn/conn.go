// Package conn manages the lifecycle of a connection to a backing
// store.
//
// A Manager owns one connection and its state machine:
//
//	Disconnected → Connecting → {Connected | Error} →
//	Disconnecting → Disconnected
//
// Transitions are serialized; concurrent Open/Close calls are applied
// one at a time, never interleaved. All I/O enters through the
// injected Dialer, which keeps the package itself free of storage
// engine dependencies. There is no built-in reconnection: after Close
// or a failed dial, callers call Open again.
package conn

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gnames/gnmodel/pkg/store"
)

// State is the connection state of a Manager.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
	Error
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	case Error:
		return "error"
	default:
		return "disconnected"
	}
}

// Transition is one state change, delivered to subscribers.
type Transition struct {
	From State
	To   State
}

// Dialer turns an address into a live storage hook. It is the only
// place I/O enters the connection layer; implementations live in
// internal/io* packages.
type Dialer func(ctx context.Context, address string) (store.Store, error)

// Option configures a Manager.
type Option func(*Manager)

// OptLogger sets a logger for lifecycle events. Without one the
// Manager is silent.
func OptLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// OptDialTimeout bounds one connection attempt. Zero means no limit.
func OptDialTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.dialTimeout = d
	}
}

type subscriber struct {
	id int
	fn func(Transition)
}

// Manager owns one connection to a backing store. The zero value is
// not usable; create one with New.
type Manager struct {
	dialer      Dialer
	logger      *slog.Logger
	dialTimeout time.Duration

	// opMu serializes transition application and subscriber
	// notification. mu guards the snapshot below and is never held
	// across I/O or callbacks.
	opMu sync.Mutex
	mu   sync.RWMutex

	state   State
	st      store.Store
	dialErr error
	// attempt is closed when the current dial resolves.
	attempt chan struct{}
	// session is canceled when Disconnecting begins, failing in-flight
	// Do operations.
	session context.Context
	cancel  context.CancelFunc
	subs    []subscriber
	nextSub int
	ops     sync.WaitGroup
}

// New creates a disconnected Manager over the given dialer.
func New(dialer Dialer, opts ...Option) *Manager {
	res := &Manager{dialer: dialer}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Open begins asynchronous connection establishment. A Manager that is
// already Connecting or Connected ignores the call, so concurrent
// opens share one underlying attempt. The outcome is observable via
// Subscribe, Ready or State.
func (m *Manager) Open(address string) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	if state == Connecting || state == Connected {
		return
	}

	done := make(chan struct{})
	session, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	if m.cancel != nil {
		// Release the session of a previous failed attempt.
		m.cancel()
	}
	m.attempt = done
	m.session = session
	m.cancel = cancel
	m.dialErr = nil
	m.mu.Unlock()

	m.transition(Connecting)
	go m.dial(session, address, done)
}

// dial runs one connection attempt and applies its outcome.
func (m *Manager) dial(
	session context.Context,
	address string,
	done chan struct{},
) {
	ctx := session
	if m.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(session, m.dialTimeout)
		defer cancel()
	}
	st, err := m.dialer(ctx, address)

	m.opMu.Lock()
	defer m.opMu.Unlock()
	if err != nil {
		m.mu.Lock()
		m.dialErr = err
		m.mu.Unlock()
		if m.logger != nil {
			m.logger.Error("connection failed",
				"address", address, "error", err)
		}
		m.transition(Error)
	} else {
		m.mu.Lock()
		m.st = st
		m.mu.Unlock()
		if m.logger != nil {
			m.logger.Info("connected", "address", address)
		}
		m.transition(Connected)
	}
	// Closed under opMu, after the transition: a waiter that saw the
	// channel close observes the settled state.
	close(done)
}

// Close tears the connection down: Disconnecting, then Disconnected.
// Valid from Connected or Error; on an already Disconnected manager it
// is a no-op with no transition events. A dial still in flight is
// allowed to resolve first, then its outcome is closed. Once
// Disconnecting begins, in-flight store operations fail with
// *ClosedError, and Close waits for them to drain before tearing the
// store down.
func (m *Manager) Close(ctx context.Context) error {
	for {
		m.mu.RLock()
		state, attempt := m.state, m.attempt
		m.mu.RUnlock()
		if state != Connecting {
			break
		}
		select {
		case <-attempt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	state := m.state
	st := m.st
	cancel := m.cancel
	m.mu.RUnlock()
	if state == Disconnected || state == Disconnecting {
		return nil
	}

	m.transition(Disconnecting)
	if cancel != nil {
		cancel()
	}
	m.ops.Wait()

	var err error
	if closer, ok := st.(store.Closer); ok {
		err = closer.Close(ctx)
	}
	m.mu.Lock()
	m.st = nil
	m.mu.Unlock()
	m.transition(Disconnected)
	if m.logger != nil {
		m.logger.Info("disconnected")
	}
	return err
}

// Subscribe registers a callback invoked once per state transition,
// synchronously, in subscription order. The returned function
// unsubscribes. Callbacks must not call Open or Close.
func (m *Manager) Subscribe(fn func(Transition)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool {
			return s.id == id
		})
		m.mu.Unlock()
	}
}

// Ready blocks until the manager is Connected (nil), the dial failed
// (the dial error), or ctx is done. On a manager that is neither
// connecting nor connected it fails immediately with
// *NotConnectedError.
func (m *Manager) Ready(ctx context.Context) error {
	for {
		m.mu.RLock()
		state, attempt, dialErr := m.state, m.attempt, m.dialErr
		m.mu.RUnlock()

		switch state {
		case Connected:
			return nil
		case Error:
			return dialErr
		case Connecting:
			select {
			case <-attempt:
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
			return &NotConnectedError{State: state}
		}
	}
}

// Do runs fn against the live store. It fails fast with
// *NotConnectedError unless Connected. When Disconnecting begins while
// fn runs, fn's context is canceled and the failure is reported as
// *ClosedError.
func (m *Manager) Do(
	ctx context.Context,
	fn func(ctx context.Context, st store.Store) error,
) error {
	m.mu.RLock()
	if m.state != Connected {
		state := m.state
		m.mu.RUnlock()
		return &NotConnectedError{State: state}
	}
	st := m.st
	session := m.session
	m.ops.Add(1)
	m.mu.RUnlock()
	defer m.ops.Done()

	opCtx, opCancel := context.WithCancel(ctx)
	defer opCancel()
	stop := context.AfterFunc(session, opCancel)
	defer stop()

	err := fn(opCtx, st)
	if err != nil && session.Err() != nil {
		return &ClosedError{Err: err}
	}
	return err
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the error of the last failed connection attempt, nil
// outside the Error state.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Error {
		return nil
	}
	return m.dialErr
}

// transition applies one state change and notifies subscribers.
// Callers hold opMu; mu is released before callbacks run.
func (m *Manager) transition(to State) {
	m.mu.Lock()
	from := m.state
	m.state = to
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("connection state changed",
			"from", from.String(), "to", to.String())
	}
	tr := Transition{From: from, To: to}
	for _, s := range subs {
		s.fn(tr)
	}
}
