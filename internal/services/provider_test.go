package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"
)

// countingAuthenticator records how many times Authenticate runs.
type countingAuthenticator struct {
	calls atomic.Int32
}

func (a *countingAuthenticator) Authenticate(ctx context.Context) (oauth2.TokenSource, error) {
	a.calls.Add(1)
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test"}), nil
}

func TestProviderAuthenticatesOnce(t *testing.T) {
	a := &countingAuthenticator{}
	p := NewProvider(a)
	ctx := context.Background()

	if p.Authenticated() {
		t.Fatal("provider should start unauthenticated")
	}

	if _, err := p.Drive(ctx); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if _, err := p.Docs(ctx); err != nil {
		t.Fatalf("Docs: %v", err)
	}
	if err := p.Authenticate(ctx); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if got := a.calls.Load(); got != 1 {
		t.Errorf("Authenticate ran %d times, want 1", got)
	}
	if !p.Authenticated() {
		t.Error("provider should report authenticated")
	}
}

func TestProviderMemoizesHandles(t *testing.T) {
	p := NewProvider(&countingAuthenticator{})
	ctx := context.Background()

	drive1, err := p.Drive(ctx)
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	drive2, err := p.Drive(ctx)
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if drive1 != drive2 {
		t.Error("expected the same Drive handle on repeat calls")
	}

	docs1, err := p.Docs(ctx)
	if err != nil {
		t.Fatalf("Docs: %v", err)
	}
	docs2, err := p.Docs(ctx)
	if err != nil {
		t.Fatalf("Docs: %v", err)
	}
	if docs1 != docs2 {
		t.Error("expected the same Docs handle on repeat calls")
	}
}

func TestProviderConcurrentFirstUse(t *testing.T) {
	a := &countingAuthenticator{}
	p := NewProvider(a)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Drive(ctx); err != nil {
				t.Errorf("Drive: %v", err)
			}
			if _, err := p.Docs(ctx); err != nil {
				t.Errorf("Docs: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := a.calls.Load(); got != 1 {
		t.Errorf("Authenticate ran %d times under concurrency, want 1", got)
	}
}
