package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type fakePublishResult struct {
	err error
}

func (f fakePublishResult) Get(context.Context) (string, error) {
	return "", f.err
}

type blockingPublishResult struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingPublishResult) Get(ctx context.Context) (string, error) {
	close(b.started)
	select {
	case <-b.release:
		return "server-id", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestDrainWarnsOnPublishFailure(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{
		ServiceName: "events-test",
		Level:       zerolog.WarnLevel,
		Output:      &buf,
	})
	p := &PubSubPublisher{logg: logg}

	p.drain(context.Background(), EventOrderCreated, fakePublishResult{err: errors.New("topic gone")})

	out := buf.String()
	if !strings.Contains(out, "event publish failed") {
		t.Fatalf("expected publish failure warning, got %q", out)
	}
	if !strings.Contains(out, string(EventOrderCreated)) {
		t.Fatalf("expected event type in warning, got %q", out)
	}
}

func TestDrainStaysQuietOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{
		ServiceName: "events-test",
		Level:       zerolog.WarnLevel,
		Output:      &buf,
	})
	p := &PubSubPublisher{logg: logg}

	p.drain(context.Background(), EventBorrowDecided, fakePublishResult{})

	if got := buf.String(); got != "" {
		t.Fatalf("expected no warning on acked publish, got %q", got)
	}
}

func TestDispatchDoesNotBlockOnSlowAck(t *testing.T) {
	p := &PubSubPublisher{}
	result := &blockingPublishResult{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	// dispatch must hand the pending ack to a background goroutine and
	// return while Get is still blocked.
	p.dispatch(context.Background(), EventBorrowRequested, result)

	select {
	case <-result.started:
	case <-time.After(time.Second):
		t.Fatal("publish result was never drained")
	}
	close(result.release)
}
