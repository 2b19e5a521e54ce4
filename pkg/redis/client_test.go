package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/kv"
	"github.com/redis/go-redis/v9"
)

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.CartSlotKey("purchase", "user-1"); got != "bb:cart:purchase:user-1" {
		t.Fatalf("unexpected purchase slot key %s", got)
	}
	if got := client.CartSlotKey("borrow", "user-1"); got != "bb:cart:borrow:user-1" {
		t.Fatalf("unexpected borrow slot key %s", got)
	}
	if got := client.CartSlotKey("purchase", ""); got != "bb:cart:purchase" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	slot := NewSlot(&Client{store: mock}, time.Hour)

	if err := slot.Set(ctx, "bb:cart:purchase:u", []byte(`[{"id":"b1:buy"}]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := slot.Get(ctx, "bb:cart:purchase:u")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `[{"id":"b1:buy"}]` {
		t.Fatalf("unexpected slot value %s", got)
	}
}

func TestSlotGetMissingMapsToNotFound(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot(&Client{store: newMockCmdable()}, 0)

	if _, err := slot.Get(ctx, "bb:cart:borrow:ghost"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected kv.ErrNotFound, got %v", err)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
