package changefeed

import (
	"context"
	"errors"
	"sync"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// ErrNoSubscriber is returned by Publish when no stream is open
var ErrNoSubscriber = errors.New("changefeed: no open stream")

// ChannelSource is an in-process ChangeSource. Events published while a
// stream is open are delivered to it. notesctl replay uses it to feed
// backlog transcripts through the watcher.
type ChannelSource struct {
	mu     sync.Mutex
	buffer int
	cur    *stream
}

// NewChannelSource creates a source whose streams buffer up to buffer events.
// With buffer 0 Publish returns only once the consumer has taken the event.
func NewChannelSource(buffer int) *ChannelSource {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelSource{buffer: buffer}
}

// Watch opens a stream, replacing any stream opened before
func (c *ChannelSource) Watch(ctx context.Context) (repositories.ChangeStream, error) {
	c.mu.Lock()
	prev := c.cur
	c.cur = nil
	c.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	var s *stream
	s = newStream(c.buffer, func() {
		c.mu.Lock()
		if c.cur == s {
			c.cur = nil
		}
		c.mu.Unlock()
	})

	c.mu.Lock()
	c.cur = s
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

// Publish delivers ev to the open stream, blocking while its buffer is full
func (c *ChannelSource) Publish(ctx context.Context, ev entities.ChangeEvent) error {
	s := c.current()
	if s == nil {
		return ErrNoSubscriber
	}
	if !s.send(ctx, ev) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrNoSubscriber
	}
	return nil
}

// PublishError reports err on the open stream
func (c *ChannelSource) PublishError(err error) {
	if s := c.current(); s != nil {
		s.report(err)
	}
}

func (c *ChannelSource) current() *stream {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}
