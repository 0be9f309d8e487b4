package changefeed

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// stream is the ChangeStream shared by all sources
type stream struct {
	events chan entities.ChangeEvent
	errors chan error
	done   chan struct{}
	once   sync.Once
	onStop func()
}

func newStream(buffer int, onStop func()) *stream {
	return &stream{
		events: make(chan entities.ChangeEvent, buffer),
		errors: make(chan error, buffer),
		done:   make(chan struct{}),
		onStop: onStop,
	}
}

func (s *stream) Events() <-chan entities.ChangeEvent { return s.events }
func (s *stream) Errors() <-chan error                { return s.errors }

// Close stops delivery. The event and error channels are not closed; consumers select on their own context.
func (s *stream) Close() error {
	s.once.Do(func() {
		close(s.done)
		if s.onStop != nil {
			s.onStop()
		}
	})
	return nil
}

// send delivers ev unless the stream or ctx is done
func (s *stream) send(ctx context.Context, ev entities.ChangeEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// report hands err to the consumer without blocking the feed
func (s *stream) report(err error) {
	select {
	case s.errors <- err:
	default:
	}
}
