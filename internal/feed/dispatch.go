package feed

import (
	"context"
	"sync"

	"github.com/ecoraiz/inat-events/internal/events"
	"github.com/ecoraiz/inat-events/internal/inat"
)

// Dispatcher marshals completions onto one designated execution context,
// the equivalent of the UI thread in the mobile app this service grew out
// of. Callers mutate their presentation state inside dispatched functions
// without further locking.
type Dispatcher interface {
	Dispatch(fn func())
}

// SerialDispatcher runs dispatched functions one at a time on a single
// goroutine, in submission order.
type SerialDispatcher struct {
	mu      sync.Mutex
	stopped bool
	fns     chan func()
	done    chan struct{}
}

// NewSerialDispatcher starts the dispatch goroutine.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		fns:  make(chan func(), 64),
		done: make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *SerialDispatcher) loop() {
	defer close(d.done)
	for fn := range d.fns {
		fn()
	}
}

// Dispatch queues fn for execution. After Stop it drops fn and returns;
// a stopped dispatcher never runs late completions.
func (d *SerialDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.fns <- fn
}

// Stop drains queued functions and stops the goroutine. Idempotent.
func (d *SerialDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.fns)
	d.mu.Unlock()
	<-d.done
}

// FeaturedEventsAsync runs FeaturedEvents off the calling goroutine and
// delivers exactly one completion, success or failure, on the dispatcher.
func (s *Service) FeaturedEventsAsync(ctx context.Context, placeID, count int, d Dispatcher, complete func([]events.FeaturedEvent, error)) {
	go func() {
		list, err := s.FeaturedEvents(ctx, placeID, count)
		d.Dispatch(func() { complete(list, err) })
	}()
}

// NearbyObservationsAsync is the asynchronous form of NearbyObservations
// with the same single-completion contract.
func (s *Service) NearbyObservationsAsync(ctx context.Context, lat, lng, radiusKm float64, taxonIDs []int, count int, d Dispatcher, complete func([]inat.Observation, error)) {
	go func() {
		list, err := s.NearbyObservations(ctx, lat, lng, radiusKm, taxonIDs, count)
		d.Dispatch(func() { complete(list, err) })
	}()
}
