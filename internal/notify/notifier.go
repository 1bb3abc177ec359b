// Package notify publishes "data changed" notifications over Redis pub/sub
// so clients can subscribe to one change feed instead of re-fetching every
// snapshot on a fixed interval.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channel = "espetaria:changes"

// Event announces that one of the polled collections changed. Subscribers
// re-fetch the named snapshot; the event itself carries no payload.
type Event struct {
	Type string    `json:"type"` // orders | tables | products | inventory | cash
	At   time.Time `json:"at"`
}

const (
	TopicOrders    = "orders"
	TopicTables    = "tables"
	TopicInventory = "inventory"
	TopicCash      = "cash"
)

type Notifier struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Notifier { return &Notifier{rdb: rdb} }

// Publish is best-effort: a missed notification only delays a client until
// its next manual refresh, so failures are logged and swallowed.
func (n *Notifier) Publish(ctx context.Context, topic string) {
	if n == nil || n.rdb == nil {
		return
	}
	data, err := json.Marshal(Event{Type: topic, At: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, channel, data).Err(); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("notify: publish failed")
	}
}

// Subscribe returns a channel of events that closes when ctx is cancelled.
// Each caller gets its own Redis subscription tied to its own lifetime.
func (n *Notifier) Subscribe(ctx context.Context) <-chan Event {
	out := make(chan Event, 8)
	if n == nil || n.rdb == nil {
		close(out)
		return out
	}

	sub := n.rdb.Subscribe(ctx, channel)
	go func() {
		defer close(out)
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
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				default:
					// Slow consumer — drop rather than block the feed.
				}
			}
		}
	}()
	return out
}
