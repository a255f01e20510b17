package resilience

import (
	"errors"
	"testing"
	"time"
)

var errTest = errors.New("service unavailable")

func TestClosedStateAllowsCalls(t *testing.T) {
	b := NewBreaker(3, time.Second)
	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Fatal("expected fn to be called")
	}
}

func TestOpensAfterMaxFailures(t *testing.T) {
	b := NewBreaker(3, time.Second)
	for range 3 {
		_ = b.Execute(func() error { return errTest })
	}

	err := b.Execute(func() error { return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestHalfOpenAfterTimeout(t *testing.T) {
	b := NewBreaker(1, time.Second)
	_ = b.Execute(func() error { return errTest })

	// Not yet expired: still open.
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	b.now = func() time.Time { return time.Now().Add(2 * time.Second) }

	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected success after timeout, got %v", err)
	}

	// Success in half-open closes the circuit again.
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected closed circuit, got %v", err)
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(1, time.Second)
	_ = b.Execute(func() error { return errTest })

	b.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	_ = b.Execute(func() error { return errTest })

	b.now = time.Now
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened circuit, got %v", err)
	}
}

func TestGroupIsolatesKeys(t *testing.T) {
	g := NewGroup(func() *Breaker { return NewBreaker(1, time.Minute) })

	_ = g.For("github").Execute(func() error { return errTest })

	if err := g.For("github").Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected github circuit open, got %v", err)
	}
	if err := g.For("slack").Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected slack circuit unaffected, got %v", err)
	}
}

func TestGroupReusesBreaker(t *testing.T) {
	g := NewGroup(func() *Breaker { return NewBreaker(2, time.Minute) })
	if g.For("jira") != g.For("jira") {
		t.Fatal("expected the same breaker instance per key")
	}
}
