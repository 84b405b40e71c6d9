package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestLocalBrokerDeliversToAllSubscribers(t *testing.T) {
	b := NewLocalBroker()
	ctx := context.Background()

	a, cancelA, _ := b.Subscribe(ctx, "feed")
	c, cancelC, _ := b.Subscribe(ctx, "feed")
	other, cancelOther, _ := b.Subscribe(ctx, "other")
	defer cancelA()
	defer cancelC()
	defer cancelOther()

	if err := b.Publish(ctx, "feed", []byte("hello")); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	for i, ch := range []<-chan []byte{a, c} {
		select {
		case msg := <-ch:
			if string(msg) != "hello" {
				t.Errorf("subscriber %d got %q", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}

	select {
	case msg := <-other:
		t.Errorf("unrelated channel received %q", msg)
	default:
	}
}

func TestLocalBrokerCancelClosesAndUnregisters(t *testing.T) {
	b := NewLocalBroker()
	ch, cancel, _ := b.Subscribe(context.Background(), "feed")

	if b.Subscribers("feed") != 1 {
		t.Fatalf("Subscribers = %d", b.Subscribers("feed"))
	}
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	if b.Subscribers("feed") != 0 {
		t.Errorf("Subscribers = %d after cancel", b.Subscribers("feed"))
	}
	// Publishing with no subscribers is a no-op.
	if err := b.Publish(context.Background(), "feed", []byte("x")); err != nil {
		t.Errorf("Publish: %v", err)
	}
}

func TestLocalBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewLocalBroker()
	ch, cancel, _ := b.Subscribe(context.Background(), "feed")
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		_ = b.Publish(context.Background(), "feed", []byte("x"))
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered = %d, want %d", len(ch), subscriberBuffer)
	}
}
