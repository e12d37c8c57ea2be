package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

const presenceOnlineSet = "presence:online"

// PresenceStore is the durable half of the connection registry: the
// set of user IDs with at least one live WebSocket connection. Keeping
// it in Redis makes the online list correct across multiple server
// instances.
type PresenceStore struct {
	client *goredis.Client
}

func NewPresenceStore(client *goredis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

func (p *PresenceStore) SetOnline(ctx context.Context, userID string) error {
	return p.client.SAdd(ctx, presenceOnlineSet, userID).Err()
}

func (p *PresenceStore) SetOffline(ctx context.Context, userID string) error {
	return p.client.SRem(ctx, presenceOnlineSet, userID).Err()
}

func (p *PresenceStore) IsOnline(ctx context.Context, userID string) (bool, error) {
	return p.client.SIsMember(ctx, presenceOnlineSet, userID).Result()
}

func (p *PresenceStore) OnlineUsers(ctx context.Context) ([]string, error) {
	return p.client.SMembers(ctx, presenceOnlineSet).Result()
}
