package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitClosed(t *testing.T, p *Producer) {
	t.Helper()
	done := make(chan struct{})
	go func() { p.WaitClosed(); close(done) }()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("producer tidak berhenti")
	}
}

func TestProducerCloseThenCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"127.0.0.1:1"}, "pos.test", 8)
	p.Start(ctx)

	// urutan shutdown di main: Close dulu, baru cancel
	p.Close()
	cancel()
	waitClosed(t, p)
}

func TestProducerCancelThenClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"127.0.0.1:1"}, "pos.test", 8)
	p.Start(ctx)

	// cancel duluan juga tidak boleh panic double-close
	cancel()
	assert.NotPanics(t, p.Close)
	waitClosed(t, p)
}

func TestProducerCloseTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := NewProducer([]string{"127.0.0.1:1"}, "pos.test", 8)
	p.Start(ctx)

	p.Close()
	assert.NotPanics(t, p.Close)
	waitClosed(t, p)
}
