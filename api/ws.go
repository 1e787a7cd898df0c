package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"emoji-panel/panel"
	"emoji-panel/recent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.panels.Get(id)
	if !ok {
		http.Error(w, "panel not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.String("panel", id), zap.Error(err))
		return
	}
	defer conn.Close()

	// Serialise all WebSocket writes; gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeFrame := func(data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	outChan := make(chan []byte, 64)
	kick := p.Attach(outChan) // kicks any prior client
	defer p.Detach(outChan)   // closes outChan + detaches if still owner

	// Goroutine: pump frames pushed by the panel to the client.
	// Exits when Detach closes outChan.
	go func() {
		for data := range outChan {
			if err := writeFrame(data); err != nil {
				return
			}
		}
	}()

	// Goroutine: watch for panel close or displacement and close the
	// connection so ReadMessage below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-p.Done():
			writeFrame(panel.ClosedFrame()) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection; close without a "closed"
			// frame so the page shows a reconnect hint rather than panel-ended.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	// Main loop: handle client frames one at a time, in arrival order.
	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Client went away, or conn was closed by the watcher above.
			return
		}

		msg, err := panel.DecodeInbound(data)
		if err != nil {
			h.log.Debug("ignoring ws frame", zap.String("panel", id), zap.Error(err))
			continue
		}
		if err := p.HandleMessage(ctx, msg); err != nil {
			if errors.Is(err, recent.ErrStorage) {
				h.log.Error("recent list unavailable", zap.String("panel", id), zap.Error(err))
				continue
			}
			h.log.Warn("panel message failed", zap.String("panel", id), zap.Error(err))
		}
	}
}
