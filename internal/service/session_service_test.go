package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/course-catalog/internal/catalogview"
	"github.com/Lixing-Zhang/course-catalog/internal/models"
	"github.com/Lixing-Zhang/course-catalog/internal/repository"
)

func newTestSessionService(opts SessionOptions) *SessionService {
	catalog := NewCatalogService(repository.NewInMemoryCatalogRepository())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionService(catalog, opts, log)
}

func addItem(id int64) func(catalogview.View) catalogview.View {
	return func(v catalogview.View) catalogview.View { return v.AddItem(id) }
}

func TestSessionService_MountsFreshView(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: time.Hour})

	v, err := svc.View(context.Background(), "a")
	if err != nil {
		t.Fatalf("View() unexpected error: %v", err)
	}

	if len(v.Cart()) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(v.Cart()))
	}
	if v.SortOption() != models.SortByTitle {
		t.Errorf("expected default sort, got %q", v.SortOption())
	}
	if len(v.DisplayList()) != 6 {
		t.Errorf("expected 6 displayed items, got %d", len(v.DisplayList()))
	}
	if svc.Len() != 1 {
		t.Errorf("expected 1 session, got %d", svc.Len())
	}
}

func TestSessionService_UpdatePersistsWithinSession(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: time.Hour})
	ctx := context.Background()

	if _, err := svc.Update(ctx, "a", addItem(1)); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if _, err := svc.Update(ctx, "a", addItem(1)); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	v, _ := svc.View(ctx, "a")
	if got := v.Quantity(1); got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}
}

func TestSessionService_SessionsAreIsolated(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: time.Hour})
	ctx := context.Background()

	_, _ = svc.Update(ctx, "a", addItem(1))
	_, _ = svc.Update(ctx, "b", func(v catalogview.View) catalogview.View {
		return v.SetSearchTerm("agiota").SetSortOption(models.SortByPrice)
	})

	a, _ := svc.View(ctx, "a")
	b, _ := svc.View(ctx, "b")

	if a.Quantity(1) != 1 || a.SearchTerm() != "" {
		t.Errorf("session a leaked state: quantity=%d search=%q", a.Quantity(1), a.SearchTerm())
	}
	if len(b.Cart()) != 0 || b.SearchTerm() != "agiota" {
		t.Errorf("session b leaked state: cart=%d search=%q", len(b.Cart()), b.SearchTerm())
	}
}

func TestSessionService_Reset(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: time.Hour})
	ctx := context.Background()

	_, _ = svc.Update(ctx, "a", addItem(3))

	if !svc.Reset("a") {
		t.Error("Reset() = false for existing session")
	}
	if svc.Reset("a") {
		t.Error("Reset() = true for already reset session")
	}

	v, _ := svc.View(ctx, "a")
	if len(v.Cart()) != 0 {
		t.Errorf("expected empty cart after reset, got %d lines", len(v.Cart()))
	}
}

func TestSessionService_ReadsKeepSessionAlive(t *testing.T) {
	const ttl = 200 * time.Millisecond
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: ttl})
	ctx := context.Background()

	if _, err := svc.Update(ctx, "a", addItem(1)); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	// reads alone span well past the TTL
	for i := 0; i < 10; i++ {
		time.Sleep(ttl / 4)

		v, err := svc.View(ctx, "a")
		if err != nil {
			t.Fatalf("View() unexpected error: %v", err)
		}
		if got := v.Quantity(1); got != 1 {
			t.Fatalf("after %v of reads: quantity = %d, want 1", time.Duration(i+1)*ttl/4, got)
		}
	}
}

func TestSessionService_IdleSessionExpires(t *testing.T) {
	const ttl = 100 * time.Millisecond
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: ttl})
	ctx := context.Background()

	if _, err := svc.Update(ctx, "a", addItem(1)); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	time.Sleep(3 * ttl)

	v, _ := svc.View(ctx, "a")
	if len(v.Cart()) != 0 {
		t.Errorf("expected idle session to remount with an empty cart, got %d lines", len(v.Cart()))
	}
}

func TestSessionService_EvictsOldestSession(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 2, TTL: time.Hour})
	ctx := context.Background()

	_, _ = svc.Update(ctx, "a", addItem(1))
	_, _ = svc.Update(ctx, "b", addItem(2))
	_, _ = svc.Update(ctx, "c", addItem(3))

	if svc.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", svc.Len())
	}

	v, _ := svc.View(ctx, "a")
	if len(v.Cart()) != 0 {
		t.Error("expected evicted session to remount with an empty cart")
	}
}

func TestSessionService_InvalidSession(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 2, TTL: time.Hour})

	if _, err := svc.View(context.Background(), ""); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("View(\"\") error = %v, want ErrInvalidSession", err)
	}
	if _, err := svc.Update(context.Background(), "", addItem(1)); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Update(\"\") error = %v, want ErrInvalidSession", err)
	}
}

func TestSessionService_ConcurrentUpdates(t *testing.T) {
	svc := newTestSessionService(SessionOptions{MaxSessions: 10, TTL: time.Hour})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Update(ctx, "shared", addItem(5))
		}()
	}
	wg.Wait()

	v, _ := svc.View(ctx, "shared")
	if got := v.Quantity(5); got != 50 {
		t.Errorf("quantity = %d, want 50 (lost updates)", got)
	}
}
