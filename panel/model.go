package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"emoji-panel/clipboard"
	"emoji-panel/metrics"
	"emoji-panel/recent"
)

// Panel is one open palette. It is Detached until a UI transport attaches
// and goes back to Detached when that transport goes away. Frames pushed
// while Detached are dropped.
type Panel struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	LastActive time.Time
	Attached   bool

	store *recent.Store
	clip  clipboard.Writer
	log   *zap.Logger

	outChan   chan []byte
	kickChan  chan struct{}
	outMu     sync.Mutex
	lastKnown []string

	done      chan struct{}
	closeOnce sync.Once
}

type panelJSON struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Attached   bool      `json:"attached"`
}

func (p *Panel) MarshalJSON() ([]byte, error) {
	p.outMu.Lock()
	v := panelJSON{
		ID:         p.ID,
		Name:       p.Name,
		CreatedAt:  p.CreatedAt,
		LastActive: p.LastActive,
		Attached:   p.Attached,
	}
	p.outMu.Unlock()
	return json.Marshal(v)
}

// Attach registers a channel to receive encoded frames. If a previous client
// is attached it is kicked: its kick channel is closed so the transport can
// detect the displacement and close that connection. Returns a kick channel
// that will be closed if this client is itself later displaced.
func (p *Panel) Attach(ch chan []byte) <-chan struct{} {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	if p.kickChan != nil {
		close(p.kickChan)
	}
	if p.outChan == nil {
		metrics.AttachedPanels.Inc()
	}
	kick := make(chan struct{})
	p.kickChan = kick
	p.outChan = ch
	p.Attached = true
	return kick
}

// Detach is called when a connection ends. It only updates panel state if
// ch is still the current owner (guards against a displaced connection
// detaching a newer one). It always closes ch so the pump goroutine exits.
func (p *Panel) Detach(ch chan []byte) {
	p.outMu.Lock()
	if p.outChan == ch {
		p.outChan = nil
		p.Attached = false
		p.kickChan = nil
		p.LastActive = time.Now()
		metrics.AttachedPanels.Dec()
	}
	p.outMu.Unlock()
	close(ch)
}

// IsAttached reports whether a UI transport is bound.
func (p *Panel) IsAttached() bool {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	return p.Attached
}

// idleFor reports how long the panel has been without a client as of now.
// An attached panel is never idle.
func (p *Panel) idleFor(now time.Time) (time.Duration, bool) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	if p.Attached {
		return 0, false
	}
	return now.Sub(p.LastActive), true
}

// Done returns a channel that is closed when the panel is closed.
func (p *Panel) Done() <-chan struct{} {
	return p.done
}

// Close ends the panel. Safe to call more than once.
func (p *Panel) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// HandleMessage dispatches one UI message. Only storage failures are
// returned; the UI has already been sent the last known list by then.
func (p *Panel) HandleMessage(ctx context.Context, msg Inbound) error {
	switch m := msg.(type) {
	case SelectionMade:
		return p.OnSelection(ctx, m.Item)
	case RecentRequest:
		return p.OnRecentRequest(ctx)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}
}

// OnSelection copies item to the clipboard, promotes it and pushes the new
// list. A clipboard failure is reported to the UI but does not stop the
// promotion.
func (p *Panel) OnSelection(ctx context.Context, item string) error {
	if item == "" {
		return nil
	}
	p.touch()

	if err := p.clip.WriteText(item); err != nil {
		metrics.ClipboardFailures.Inc()
		p.log.Warn("clipboard write failed", zap.Error(err))
		p.push(Notice{Type: TypeNotice, Level: "error", Text: fmt.Sprintf("Could not copy %s to clipboard", item)})
	} else {
		p.push(Notice{Type: TypeNotice, Level: "info", Text: fmt.Sprintf("Copied %s to clipboard!", item)})
	}

	items, err := p.store.Promote(ctx, item)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("promote").Inc()
		p.push(newRecentUpdated(p.lastKnownList()))
		return fmt.Errorf("promote %q: %w", item, err)
	}
	metrics.Promotions.WithLabelValues("panel").Inc()
	p.remember(items)
	p.push(newRecentUpdated(items))
	return nil
}

// OnRecentRequest pushes the current recent list.
func (p *Panel) OnRecentRequest(ctx context.Context) error {
	p.touch()
	items, err := p.store.List(ctx)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("list").Inc()
		p.push(newRecentUpdated(p.lastKnownList()))
		return fmt.Errorf("list recent: %w", err)
	}
	p.remember(items)
	p.push(newRecentUpdated(items))
	return nil
}

// push encodes v and hands it to the attached client without blocking.
// Frames are dropped when no client is attached or its buffer is full.
func (p *Panel) push(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		p.log.Error("encode frame", zap.Error(err))
		return
	}
	p.outMu.Lock()
	defer p.outMu.Unlock()
	if p.outChan == nil {
		return
	}
	select {
	case p.outChan <- data:
	default:
		p.log.Debug("dropping frame for slow client")
	}
}

func (p *Panel) touch() {
	p.outMu.Lock()
	p.LastActive = time.Now()
	p.outMu.Unlock()
}

func (p *Panel) remember(items []string) {
	cp := make([]string, len(items))
	copy(cp, items)
	p.outMu.Lock()
	p.lastKnown = cp
	p.outMu.Unlock()
}

func (p *Panel) lastKnownList() []string {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	cp := make([]string, len(p.lastKnown))
	copy(cp, p.lastKnown)
	return cp
}
