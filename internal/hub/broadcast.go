package hub

import (
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/soar/padmapper/internal/keysim"
)

const fullSyncInterval = 5 * time.Second

// Broadcaster listens for key transitions and broadcasts them to the
// hub. It tracks its own held-key set from the transition stream, so it
// never reaches into the ledger from another goroutine.
type Broadcaster struct {
	hub         *Hub
	transitions <-chan keysim.Transition
	held        map[string]bool
	seq         int64
	mu          sync.RWMutex
}

func NewBroadcaster(h *Hub, transitions <-chan keysim.Transition) *Broadcaster {
	return &Broadcaster{
		hub:         h,
		transitions: transitions,
		held:        make(map[string]bool),
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case tr, ok := <-b.transitions:
			if !ok {
				return
			}
			name := tr.Key.Name()

			b.mu.Lock()
			if tr.Down {
				b.held[name] = true
			} else {
				delete(b.held, name)
			}
			b.seq++
			seq := b.seq
			b.mu.Unlock()

			b.send(NewTransitionMessage(seq, name, tr.Down))

		case <-ticker.C:
			// Periodic full sync recovers observers that missed a frame.
			b.send(b.snapshotMessage())
		}
	}
}

// SendInitialState sends the current held-key set to a new client.
func (b *Broadcaster) SendInitialState(c *Client) {
	data, err := json.Marshal(b.snapshotMessage())
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) snapshotMessage() *WSMessage {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	held := make([]string, 0, len(b.held))
	for name := range b.held {
		held = append(held, name)
	}
	b.mu.Unlock()

	sort.Strings(held)
	return NewSnapshotMessage(seq, held)
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	b.hub.Broadcast(data)
}
