package capture

import (
	"context"
	"testing"
	"time"
)

type sliceSource struct {
	fixes []Position
}

func (s sliceSource) Subscribe(ctx context.Context) (<-chan Position, error) {
	ch := make(chan Position)
	go func() {
		defer close(ch)
		for _, f := range s.fixes {
			select {
			case <-ctx.Done():
				return
			case ch <- f:
			}
		}
	}()
	return ch, nil
}

func TestSessionRecordsAndDetectsLoop(t *testing.T) {
	path := walkSquare(21.1702, 72.8311, 30)

	loops := 0
	loopCh := make(chan Path, 1)
	session := NewSession(nil, func(p Path) {
		loops++
		loopCh <- p
	})

	if err := session.Start(context.Background(), sliceSource{fixes: path}); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case p := <-loopCh:
		if len(p) != 5 {
			t.Fatalf("expected 5 recorded points, got %d", len(p))
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for loop callback")
	}

	session.Stop()
	if loops != 1 {
		t.Fatalf("loop callback should fire exactly once, fired %d times", loops)
	}
}

func TestSessionFiltersNoise(t *testing.T) {
	fixes := []Position{
		{Latitude: 21.1702, Longitude: 72.8311},
		{Latitude: 21.1703, Longitude: 72.8311, Accuracy: 80}, // dropped
		{Latitude: 21.1707, Longitude: 72.8311},
	}

	session := NewSession(nil, nil)
	if err := session.Start(context.Background(), sliceSource{fixes: fixes}); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Wait for the source to drain.
	time.Sleep(50 * time.Millisecond)
	session.Stop()

	if got := len(session.Path()); got != 2 {
		t.Fatalf("expected 2 accepted fixes, got %d", got)
	}
}

func TestSessionStopSilencesCallbacks(t *testing.T) {
	blocked := make(chan Position)
	updates := 0
	session := NewSession(func(Path) { updates++ }, nil)

	src := sourceFunc(func(ctx context.Context) (<-chan Position, error) {
		return blocked, nil
	})
	if err := session.Start(context.Background(), src); err != nil {
		t.Fatalf("start: %v", err)
	}

	session.Stop()
	after := updates

	// A fix arriving after Stop must be ignored; the consumer is gone.
	select {
	case blocked <- Position{Latitude: 21.17, Longitude: 72.83}:
		t.Fatalf("stopped session should not consume fixes")
	case <-time.After(50 * time.Millisecond):
	}
	if updates != after {
		t.Fatalf("callback fired after Stop")
	}
}

type sourceFunc func(ctx context.Context) (<-chan Position, error)

func (f sourceFunc) Subscribe(ctx context.Context) (<-chan Position, error) {
	return f(ctx)
}

func TestSessionIDsDiffer(t *testing.T) {
	a := NewSession(nil, nil)
	b := NewSession(nil, nil)
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("sessions must carry distinct identifiers")
	}
}

func TestEnergyDrainAndRecharge(t *testing.T) {
	e := NewEnergy()
	if !e.CanStart() {
		t.Fatalf("full bar should allow capture")
	}

	for i := 0; i < 100; i++ {
		e.Tick(true)
	}
	if e.Level() >= 100 {
		t.Fatalf("capturing should drain energy")
	}

	drained := e.Level()
	e.Tick(false)
	if e.Level() <= drained {
		t.Fatalf("idle tick should recharge")
	}
}

func TestEnergyRunsDry(t *testing.T) {
	e := NewEnergy()
	alive := true
	for i := 0; i < 600 && alive; i++ {
		alive = e.Tick(true)
	}
	if alive {
		t.Fatalf("energy should run out under sustained capture")
	}
	if e.Level() != 0 {
		t.Fatalf("expected empty bar, got %v", e.Level())
	}
	if e.CanStart() {
		t.Fatalf("empty bar should block capture start")
	}
}
