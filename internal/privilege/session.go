// Package privilege manages the single elevated-privilege grant held
// for the duration of a run. The grant is verified once, kept alive by
// a background refresh task, and torn down on every exit path.
package privilege

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/macstrap/macstrap/internal/logger"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

// Backend verifies and refreshes the elevated-privilege grant.
type Backend interface {
	Verify(ctx context.Context, credential []byte) error
	Refresh(ctx context.Context) error
}

// State models the session lifecycle. Transitions are monotonic:
// Unacquired → Active → Expired or Terminated.
type State int32

const (
	// StateUnacquired is the initial state before any credential check.
	StateUnacquired State = iota
	// StateActive means the grant is held and being refreshed.
	StateActive
	// StateExpired means a refresh failed; privileged actions must not
	// be attempted. Detected lazily by the next privileged action.
	StateExpired
	// StateTerminated is entered explicitly at run end.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnacquired:
		return "unacquired"
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DefaultRefreshInterval keeps the grant alive well inside the typical
// five-minute credential cache window.
const DefaultRefreshInterval = 60 * time.Second

// Session owns the privilege grant for one run. The refresh loop is the
// sole writer of the Active → Expired transition; the executor only
// reads the state before privileged actions, so no lock is needed.
type Session struct {
	backend         Backend
	log             *logger.Logger
	RefreshInterval time.Duration

	state     atomic.Int32
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session in the Unacquired state.
func NewSession(backend Backend, log *logger.Logger) *Session {
	return &Session{
		backend:         backend,
		log:             log,
		RefreshInterval: DefaultRefreshInterval,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Active reports whether privileged actions may currently be attempted.
func (s *Session) Active() bool {
	return s.State() == StateActive
}

// Acquire verifies the credential and, on success, starts the refresh
// loop. A verification failure is fatal for anything privileged, so it
// surfaces as a PrivilegeError.
func (s *Session) Acquire(ctx context.Context, credential []byte) error {
	if !s.state.CompareAndSwap(int32(StateUnacquired), int32(StateActive)) {
		return macstraperrors.NewPrivilegeError(
			fmt.Sprintf("cannot acquire from state %s", s.State()), nil)
	}

	if err := s.backend.Verify(ctx, credential); err != nil {
		s.state.Store(int32(StateTerminated))
		return macstraperrors.NewPrivilegeError("credential verification failed", err)
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.refreshLoop(refreshCtx)

	s.log.Debug("privilege session acquired")
	return nil
}

func (s *Session) refreshLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.backend.Refresh(ctx); err != nil {
				if s.state.CompareAndSwap(int32(StateActive), int32(StateExpired)) {
					s.log.Error(err, "privilege refresh failed, session expired")
				}
				return
			}
			s.log.Debug("privilege session refreshed")
		}
	}
}

// Close terminates the session and stops the refresh loop. It is safe
// to call from any state and on every exit path, including when the
// session was never acquired.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
		s.state.Store(int32(StateTerminated))
	})
}
