package capture

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Source yields GPS fixes. Subscribe must stop sending once ctx is done and
// close the channel when the stream ends.
type Source interface {
	Subscribe(ctx context.Context) (<-chan Position, error)
}

// Session drives one capture attempt: it consumes a position subscription,
// filters and records fixes, and fires the loop callback once when the path
// closes. Stopping the session cancels the subscription synchronously; no
// callback fires after Stop returns.
type Session struct {
	ID       string
	mu       sync.Mutex
	recorder *Recorder

	cancel context.CancelFunc
	done   chan struct{}

	onUpdate func(Path) // after each accepted fix
	onLoop   func(Path) // once, when the loop closes
}

func NewSession(onUpdate, onLoop func(Path)) *Session {
	return &Session{
		ID:       uuid.NewString(),
		recorder: NewRecorder(),
		onUpdate: onUpdate,
		onLoop:   onLoop,
	}
}

// Start subscribes to the source and begins recording on a dedicated
// goroutine. It returns as soon as the subscription is established.
func (s *Session) Start(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)

	fixes, err := src.Subscribe(ctx)
	if err != nil {
		cancel()
		return err
	}

	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, fixes)
	return nil
}

func (s *Session) run(ctx context.Context, fixes <-chan Position) {
	defer close(s.done)

	looped := false
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-fixes:
			if !ok {
				return
			}
			s.mu.Lock()
			accepted := s.recorder.Record(p)
			path := s.recorder.Path()
			s.mu.Unlock()
			if !accepted {
				continue
			}
			if s.onUpdate != nil {
				s.onUpdate(path)
			}
			if !looped && LoopClosed(path) {
				looped = true
				if s.onLoop != nil {
					s.onLoop(path)
				}
			}
		}
	}
}

// Stop tears the subscription down and waits for the recording goroutine to
// exit, guaranteeing no callback fires afterwards.
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Path returns a copy of the path recorded so far.
func (s *Session) Path() Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Path()
}

// DistanceM returns the session distance in meters.
func (s *Session) DistanceM() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.DistanceM()
}
