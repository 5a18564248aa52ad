package hub

import "time"

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string   `json:"type"`      // "snapshot" or "transition"
	Seq       int64    `json:"seq"`       // Sequence number for ordering
	Timestamp int64    `json:"timestamp"` // Unix timestamp in milliseconds
	Held      []string `json:"held,omitempty"`
	Key       string   `json:"key,omitempty"`
	Down      bool     `json:"down,omitempty"`
}

// NewSnapshotMessage creates a "snapshot" message listing every held key.
func NewSnapshotMessage(seq int64, held []string) *WSMessage {
	return &WSMessage{
		Type:      "snapshot",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Held:      held,
	}
}

// NewTransitionMessage creates a "transition" message for one key change.
func NewTransitionMessage(seq int64, key string, down bool) *WSMessage {
	return &WSMessage{
		Type:      "transition",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Key:       key,
		Down:      down,
	}
}
