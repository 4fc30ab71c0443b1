package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse-dev/gatehouse/core"
)

// Adapter stores sessions in Redis, which expires them natively: every
// entry is written with a TTL and Redis deletes it when the TTL elapses.
type Adapter struct {
	client *redis.Client
}

var _ core.SessionStore = (*Adapter)(nil)

func New(client *redis.Client) *Adapter {
	return &Adapter{client: client}
}

// NewFromURL dials Redis from a redis:// URL.
func NewFromURL(url string) (*Adapter, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Adapter{client: redis.NewClient(opt)}, nil
}

// Client exposes the underlying connection for health checks and shutdown.
func (a *Adapter) Client() *redis.Client {
	return a.client
}
