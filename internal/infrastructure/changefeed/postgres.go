package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// PostgresSource listens for NOTIFY payloads published by the transcripts trigger
type PostgresSource struct {
	dsn          string
	channel      string
	maxReconnect time.Duration
	buffer       int
	logger       *zap.Logger
}

// PostgresSourceOption customises a PostgresSource
type PostgresSourceOption func(*PostgresSource)

// WithBuffer sets the event buffer size of opened streams
func WithBuffer(n int) PostgresSourceOption {
	return func(p *PostgresSource) {
		if n > 0 {
			p.buffer = n
		}
	}
}

// WithMaxReconnectInterval caps the wait between reconnect attempts
func WithMaxReconnectInterval(d time.Duration) PostgresSourceOption {
	return func(p *PostgresSource) {
		if d > 0 {
			p.maxReconnect = d
		}
	}
}

// NewPostgresSource creates a LISTEN based change source
func NewPostgresSource(dsn, channel string, logger *zap.Logger, opts ...PostgresSourceOption) *PostgresSource {
	p := &PostgresSource{
		dsn:          dsn,
		channel:      channel,
		maxReconnect: 30 * time.Second,
		buffer:       64,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Watch connects, issues LISTEN and returns a stream fed by a background goroutine.
// The first connection is made synchronously so configuration errors surface here.
func (p *PostgresSource) Watch(ctx context.Context) (repositories.ChangeStream, error) {
	conn, err := p.listen(ctx)
	if err != nil {
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s := newStream(p.buffer, cancel)
	go p.run(loopCtx, s, conn)
	return s, nil
}

func (p *PostgresSource) listen(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, p.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect change feed: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{p.channel}.Sanitize()); err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("failed to listen on %s: %w", p.channel, err)
	}
	if p.logger != nil {
		p.logger.Info("📡 Listening for transcript changes", zap.String("channel", p.channel))
	}
	return conn, nil
}

// run receives notifications and reconnects with backoff until ctx is done
func (p *PostgresSource) run(ctx context.Context, s *stream, conn *pgx.Conn) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = p.maxReconnect
	bo.MaxElapsedTime = 0

	defer func() {
		if conn != nil {
			conn.Close(context.Background())
		}
	}()

	for {
		if conn == nil {
			wait := bo.NextBackOff()
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			c, err := p.listen(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.report(err)
				continue
			}
			conn = c
			bo.Reset()
		}

		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.report(fmt.Errorf("change feed connection lost: %w", err))
			conn.Close(context.Background())
			conn = nil
			continue
		}

		ev, err := DecodeNotification(n.Payload)
		if err != nil {
			s.report(err)
			continue
		}
		if !s.send(ctx, ev) {
			return
		}
	}
}

// DecodeNotification parses a trigger payload into a change event
func DecodeNotification(payload string) (entities.ChangeEvent, error) {
	var ev entities.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return entities.ChangeEvent{}, fmt.Errorf("failed to decode change payload: %w", err)
	}
	if ev.OperationType == "" {
		return entities.ChangeEvent{}, fmt.Errorf("change payload has no operationType")
	}
	return ev, nil
}
