package mem

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "nwp:session:"

// RedisSessions keeps sessions in Redis so several app instances can share
// admin logins. Expiry is delegated to the key TTL.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (r *RedisSessions) Save(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionPrefix+sess.ID, payload, ttl).Err()
}

func (r *RedisSessions) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisSessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

func (r *RedisSessions) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisSessionPrefix+id).Err()
}
