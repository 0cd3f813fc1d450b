package infra

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"boothtrack.in/internal/constants"
	"boothtrack.in/internal/domain"
)

// LocationNotifier fans newly created check-ins out to dashboard clients.
// With Redis configured, events go through a pub/sub channel so every
// instance feeds its own WebSocket hub; without Redis, events go straight
// to the local hub.
type LocationNotifier struct {
	hub *WsHub
	rdb *redis.Client
}

func NewLocationNotifier(hub *WsHub, rdb *redis.Client) *LocationNotifier {
	return &LocationNotifier{hub: hub, rdb: rdb}
}

// PublishLocationEvent sends the event on its way. Delivery is best effort:
// a dropped event never fails the check-in that produced it.
func (n *LocationNotifier) PublishLocationEvent(ctx context.Context, event domain.LocationEvent) {
	if n.rdb != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			if err := n.rdb.Publish(ctx, constants.RedisPubSubLocationEvents, payload).Err(); err == nil {
				return
			}
			log.Printf("LocationNotifier: redis publish failed, falling back to local hub")
		}
	}
	if n.hub != nil {
		n.hub.Broadcast(event)
	}
}

// Run subscribes to the location event channel and forwards events to the
// local hub. It returns immediately when Redis is not configured.
func (n *LocationNotifier) Run(ctx context.Context) {
	if n.rdb == nil || n.hub == nil {
		return
	}

	pubsub := n.rdb.Subscribe(ctx, constants.RedisPubSubLocationEvents)

	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("LocationNotifier: failed to subscribe to location events: %v", err)
		return
	}

	ch := pubsub.Channel()

	go func() {
		defer pubsub.Close()
		log.Println("LocationNotifier: started location event subscriber loop")
		for msg := range ch {
			var event domain.LocationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("LocationNotifier: dropping malformed event: %v", err)
				continue
			}
			n.hub.Broadcast(event)
		}
	}()
}

var _ domain.Notifier = (*LocationNotifier)(nil)
