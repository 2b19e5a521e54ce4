package events

import (
	"context"
	"encoding/json"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/pubsub"
)

const publishTimeout = 10 * time.Second

// Publisher fans domain events out to interested consumers.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated)
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged)
	PublishBorrowRequested(ctx context.Context, event BorrowRequested)
	PublishBorrowDecided(ctx context.Context, event BorrowDecided)
}

// PubSubPublisher publishes events to the configured Pub/Sub topics.
type PubSubPublisher struct {
	client *pubsub.Client
	logg   *logger.Logger
}

// NewPubSubPublisher wraps a Pub/Sub client.
func NewPubSubPublisher(client *pubsub.Client, logg *logger.Logger) *PubSubPublisher {
	return &PubSubPublisher{client: client, logg: logg}
}

func (p *PubSubPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) {
	p.publish(ctx, p.client.OrdersPublisher(), EventOrderCreated, event)
}

func (p *PubSubPublisher) PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) {
	p.publish(ctx, p.client.OrdersPublisher(), EventOrderStatus, event)
}

func (p *PubSubPublisher) PublishBorrowRequested(ctx context.Context, event BorrowRequested) {
	p.publish(ctx, p.client.BorrowsPublisher(), EventBorrowRequested, event)
}

func (p *PubSubPublisher) PublishBorrowDecided(ctx context.Context, event BorrowDecided) {
	p.publish(ctx, p.client.BorrowsPublisher(), EventBorrowDecided, event)
}

func (p *PubSubPublisher) publish(ctx context.Context, pub *gcppubsub.Publisher, eventType EventType, payload any) {
	if pub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.warn(ctx, eventType, err)
		return
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type":  string(eventType),
			"occurred_at": time.Now().UTC().Format(time.RFC3339Nano),
		},
	}

	// Fire and forget: the request must not wait on broker acknowledgement,
	// so the result is drained on a detached goroutine.
	detached := context.WithoutCancel(ctx)
	result := pub.Publish(detached, msg)
	if result == nil {
		return
	}
	p.dispatch(detached, eventType, result)
}

type publishResult interface {
	Get(context.Context) (string, error)
}

func (p *PubSubPublisher) dispatch(ctx context.Context, eventType EventType, result publishResult) {
	go p.drain(ctx, eventType, result)
}

func (p *PubSubPublisher) drain(ctx context.Context, eventType EventType, result publishResult) {
	waitCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if _, err := result.Get(waitCtx); err != nil {
		p.warn(ctx, eventType, err)
	}
}

func (p *PubSubPublisher) warn(ctx context.Context, eventType EventType, err error) {
	if p.logg == nil {
		return
	}
	p.logg.Warn(ctx, "event publish failed: "+string(eventType)+": "+err.Error())
}

// Noop drops every event. Used in tests and when Pub/Sub is not configured.
type Noop struct{}

func (Noop) PublishOrderCreated(context.Context, OrderCreated)             {}
func (Noop) PublishOrderStatusChanged(context.Context, OrderStatusChanged) {}
func (Noop) PublishBorrowRequested(context.Context, BorrowRequested)       {}
func (Noop) PublishBorrowDecided(context.Context, BorrowDecided)           {}
