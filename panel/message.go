package panel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire message types.
const (
	TypeSelectionMade = "selectionMade"
	TypeRequestRecent = "requestRecent"
	TypeRecentUpdated = "recentUpdated"
	TypeNotice        = "notice"
	TypeClosed        = "closed"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Inbound is a message sent by the UI. The set of implementations is closed:
// SelectionMade and RecentRequest.
type Inbound interface {
	inbound()
}

// SelectionMade reports that the user picked Item from the palette.
type SelectionMade struct {
	Item string
}

// RecentRequest asks for the current recent list.
type RecentRequest struct{}

func (SelectionMade) inbound() {}
func (RecentRequest) inbound() {}

type inboundWire struct {
	Type string `json:"type"`
	Item string `json:"item,omitempty"`
}

// DecodeInbound parses a UI frame. Unknown types yield ErrUnknownMessage.
func DecodeInbound(data []byte) (Inbound, error) {
	var w inboundWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode inbound message: %w", err)
	}
	switch w.Type {
	case TypeSelectionMade:
		return SelectionMade{Item: w.Item}, nil
	case TypeRequestRecent:
		return RecentRequest{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, w.Type)
	}
}

// RecentUpdated carries the recent list to the UI, most recent first.
type RecentUpdated struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

// Notice is a short user-facing status line.
type Notice struct {
	Type  string `json:"type"`
	Level string `json:"level"` // info or error
	Text  string `json:"text"`
}

// Closed tells the UI that the panel has been closed server-side.
type Closed struct {
	Type string `json:"type"`
}

func newRecentUpdated(items []string) RecentUpdated {
	if items == nil {
		items = []string{}
	}
	return RecentUpdated{Type: TypeRecentUpdated, Items: items}
}

// ClosedFrame is the encoded Closed message.
func ClosedFrame() []byte {
	data, _ := json.Marshal(Closed{Type: TypeClosed})
	return data
}
