// SPDX-License-Identifier: MPL-2.0

package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

const (
	// StateCreated indicates the server was created but Start() not called.
	StateCreated State = iota
	// StateStarting indicates Start() was called and the listener is binding.
	StateStarting
	// StateRunning indicates the server is accepting requests.
	StateRunning
	// StateStopping indicates graceful shutdown is in progress.
	StateStopping
	// StateStopped is terminal: the server has stopped.
	StateStopped
	// StateFailed is terminal: the server failed to start or serve.
	StateFailed
)

// State is the lifecycle state of a session server.
type State int32

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state is Stopped or Failed.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFailed
}

// lifecycle is the state machine every session server instance runs
// through. An instance is single-use: once stopped or failed, create a
// new one.
type lifecycle struct {
	state atomic.Int32

	mu      sync.Mutex
	lastErr error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	errCh  chan error
}

func newLifecycle() *lifecycle {
	l := &lifecycle{errCh: make(chan error, 1)}
	l.state.Store(int32(StateCreated))
	return l
}

// State returns the current state (lock-free read).
func (l *lifecycle) State() State {
	return State(l.state.Load())
}

// IsRunning reports whether the server is in the Running state.
func (l *lifecycle) IsRunning() bool {
	return l.State() == StateRunning
}

// Err returns the channel carrying async serving failures.
func (l *lifecycle) Err() <-chan error {
	return l.errCh
}

// LastError returns the error that caused the Failed state, or nil.
func (l *lifecycle) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// toStarting attempts Created -> Starting. A context already cancelled
// before any setup fails the instance immediately.
func (l *lifecycle) toStarting(ctx context.Context) error {
	select {
	case <-ctx.Done():
		err := fmt.Errorf("context cancelled before start: %w", ctx.Err())
		l.toFailed(err)
		return err
	default:
	}

	if !l.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("cannot start server in state %s", l.State())
	}

	l.ctx, l.cancel = context.WithCancel(context.Background())
	return nil
}

// toRunning marks the server as accepting requests.
func (l *lifecycle) toRunning() {
	l.state.CompareAndSwap(int32(StateStarting), int32(StateRunning))
}

// toFailed records the fatal error and publishes it on the error channel.
func (l *lifecycle) toFailed(err error) {
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()

	l.state.Store(int32(StateFailed))
	if l.cancel != nil {
		l.cancel()
	}

	select {
	case l.errCh <- err:
	default:
	}
}

// toStopping attempts a transition into Stopping. Returns false when the
// server is already stopping, stopped, or was never started.
func (l *lifecycle) toStopping() bool {
	for {
		current := l.State()
		switch current {
		case StateStopped, StateFailed, StateStopping:
			return false
		case StateCreated:
			if l.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				return false
			}
		case StateStarting, StateRunning:
			if l.state.CompareAndSwap(int32(current), int32(StateStopping)) {
				if l.cancel != nil {
					l.cancel()
				}
				return true
			}
		default:
			return false
		}
	}
}

// toStopped marks the shutdown as complete.
func (l *lifecycle) toStopped() {
	l.state.Store(int32(StateStopped))
}
