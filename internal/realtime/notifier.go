package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const projectUpdatesChannel = "project_updates"

// ProjectEvent is pushed to the owning client whenever the counterpart role
// mutates one of their projects.
type ProjectEvent struct {
	ProjectID   uuid.UUID `json:"project_id"`
	UserID      uuid.UUID `json:"user_id"`
	Event       string    `json:"event"`
	Status      string    `json:"status,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
}

// Notifier publishes project events through redis so every instance's hub
// sees them, and feeds its local hub from the same channel.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

// Publish fans the event out. Notification delivery is best effort; a redis
// failure must never fail the request that triggered it.
func (n *Notifier) Publish(ctx context.Context, ev ProjectEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notifier: marshal event: %v", err)
		return
	}
	if err := n.RDB.Publish(ctx, projectUpdatesChannel, payload).Err(); err != nil {
		log.Printf("notifier: publish failed, delivering locally only: %v", err)
		n.Hub.SendToUser(ev.UserID, ev)
	}
}

// Listen subscribes to the shared channel and forwards events to the local
// hub. Runs until the context is cancelled.
func (n *Notifier) Listen(ctx context.Context) {
	sub := n.RDB.Subscribe(ctx, projectUpdatesChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var ev ProjectEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("notifier: bad payload: %v", err)
				continue
			}
			n.Hub.SendToUser(ev.UserID, ev)
		}
	}
}
