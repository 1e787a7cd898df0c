package panel

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"emoji-panel/recent"
)

func newManager() *Manager {
	return NewManager(recent.NewStore(nil), nil, zap.NewNop())
}

func TestCreateAndGet(t *testing.T) {
	m := newManager()
	p, err := m.Create("test")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name != "test" {
		t.Fatalf("expected name 'test', got %q", p.Name)
	}
	got, ok := m.Get(p.ID)
	if !ok {
		t.Fatal("Get returned ok=false for existing panel")
	}
	if got.ID != p.ID {
		t.Fatalf("Get returned wrong panel")
	}
}

func TestCreateNameUniqueness(t *testing.T) {
	m := newManager()
	if _, err := m.Create("dup"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := m.Create("dup"); err != ErrNameTaken {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestList(t *testing.T) {
	m := newManager()
	m.Create("a")
	m.Create("b")
	if list := m.List(); len(list) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(list))
	}
}

func TestClose(t *testing.T) {
	m := newManager()
	p, err := m.Create("closeme")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.Close(p.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := m.Get(p.ID); ok {
		t.Fatal("panel still exists after Close")
	}
	select {
	case <-p.Done():
	default:
		t.Fatal("Done not closed after Close")
	}
}

func TestCloseNotFound(t *testing.T) {
	m := newManager()
	if err := m.Close("nonexistent"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	m := newManager()
	if _, ok := m.Get("nonexistent"); ok {
		t.Fatal("expected ok=false for nonexistent panel")
	}
}

func TestCloseAll(t *testing.T) {
	m := newManager()
	a, _ := m.Create("a")
	b, _ := m.Create("b")
	m.CloseAll()
	for _, p := range []*Panel{a, b} {
		select {
		case <-p.Done():
		default:
			t.Fatalf("panel %s not closed", p.Name)
		}
	}
	if len(m.List()) != 0 {
		t.Fatal("expected no panels after CloseAll")
	}
}

func TestManagerStore(t *testing.T) {
	store := recent.NewStore(nil)
	m := NewManager(store, nil, nil)
	if m.Store() != store {
		t.Fatal("Store should return the shared store")
	}
}

func TestCloseIdle(t *testing.T) {
	m := newManager()
	attached, _ := m.Create("attached")
	idle, _ := m.Create("idle")
	fresh, _ := m.Create("fresh")

	ch := make(chan []byte, 1)
	attached.Attach(ch)
	defer attached.Detach(ch)

	now := time.Now()
	idle.LastActive = now.Add(-10 * time.Minute)
	attached.LastActive = now.Add(-10 * time.Minute)

	if n := m.CloseIdle(now, 5*time.Minute); n != 1 {
		t.Fatalf("expected 1 panel closed, got %d", n)
	}
	if _, ok := m.Get(idle.ID); ok {
		t.Fatal("idle panel still registered")
	}
	select {
	case <-idle.Done():
	default:
		t.Fatal("idle panel not closed")
	}
	if _, ok := m.Get(attached.ID); !ok {
		t.Fatal("attached panel was closed")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Fatal("recently created panel was closed")
	}
}

func TestDetachStartsIdleClock(t *testing.T) {
	m := newManager()
	p, _ := m.Create("p")
	p.LastActive = time.Now().Add(-time.Hour)

	ch := make(chan []byte, 1)
	p.Attach(ch)
	p.Detach(ch)

	if n := m.CloseIdle(time.Now(), time.Minute); n != 0 {
		t.Fatalf("panel detached just now should not be idle, closed %d", n)
	}
	if n := m.CloseIdle(time.Now().Add(2*time.Minute), time.Minute); n != 1 {
		t.Fatalf("expected panel closed after idle timeout, closed %d", n)
	}
}

func TestReapIdleDisabled(t *testing.T) {
	m := newManager()
	done := make(chan struct{})
	go func() {
		m.ReapIdle(context.Background(), 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReapIdle with zero timeout should return immediately")
	}
}
