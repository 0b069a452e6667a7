// Package realtime fans out table change events to subscribed consumers.
//
// Every committed insert/update/delete on a tracked table produces one Event.
// Consumers register a callback per table and receive events until they call
// the returned unsubscribe func. When a redis client is configured the hub
// also bridges events across instances via pub/sub channels ("rt:<table>");
// with a nil client it degrades to in-process fan-out only, which is what the
// unit tests use.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Kinds of change events.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

const channelPrefix = "rt:"

// Event describes one committed row mutation. Origem identifica a
// instância que publicou: o bridge usa para não reentregar localmente o
// que esta instância já entregou.
type Event struct {
	Tabela string `json:"tabela"`
	Tipo   string `json:"tipo"` // insert | update | delete
	RowID  string `json:"row_id"`
	Origem string `json:"origem,omitempty"`
}

// Callback is invoked for every event on a subscribed table.
// Callbacks must be fast; slow consumers block the publishing goroutine.
type Callback func(Event)

// Hub routes change events to local subscribers and, optionally, through redis.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[int]Callback // table → subscriber id → callback
	nextID int

	instancia string
	rdb       *redis.Client
}

// NewHub creates a hub. rdb may be nil (local-only fan-out).
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		subs:      make(map[string]map[int]Callback),
		instancia: uuid.NewString(),
		rdb:       rdb,
	}
}

// Subscribe registers cb for all events on tabela and returns an unsubscribe
// func. Callers must invoke it on teardown to avoid leaked subscriptions.
func (h *Hub) Subscribe(tabela string, cb Callback) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[tabela] == nil {
		h.subs[tabela] = make(map[int]Callback)
	}
	id := h.nextID
	h.nextID++
	h.subs[tabela][id] = cb

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[tabela], id)
	}
}

// Publish delivers ev to local subscribers and, when redis is configured,
// to the table's pub/sub channel so other instances see it too.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	h.deliver(ev)

	if h.rdb == nil {
		return
	}
	ev.Origem = h.instancia
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("tabela", ev.Tabela).Msg("realtime: marshal event")
		return
	}
	if err := h.rdb.Publish(ctx, channelPrefix+ev.Tabela, data).Err(); err != nil {
		// Best-effort: local consumers already got the event.
		log.Error().Err(err).Str("tabela", ev.Tabela).Msg("realtime: publish to redis")
	}
}

func (h *Hub) deliver(ev Event) {
	h.mu.RLock()
	cbs := make([]Callback, 0, len(h.subs[ev.Tabela]))
	for _, cb := range h.subs[ev.Tabela] {
		cbs = append(cbs, cb)
	}
	h.mu.RUnlock()

	for _, cb := range cbs {
		cb(ev)
	}
}

// StartBridge consumes the redis pattern channel rt:* and re-delivers remote
// events to local subscribers. It returns immediately; the consuming goroutine
// stops when ctx is cancelled. No-op without a redis client.
func (h *Hub) StartBridge(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	sub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.deliverFromBridge([]byte(msg.Payload))
			}
		}
	}()
}

// deliverFromBridge re-delivers a remote event to local subscribers,
// ignorando mensagens publicadas por esta própria instância (já entregues
// direto em Publish).
func (h *Hub) deliverFromBridge(payload []byte) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Error().Err(err).Msg("realtime: invalid bridge payload")
		return
	}
	if ev.Origem == h.instancia {
		return
	}
	h.deliver(ev)
}
