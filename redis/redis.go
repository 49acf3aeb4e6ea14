package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/instanceid"
	"github.com/hoardcache/hoard/log"
)

const (
	SyncChannelName = "hoard_sync"
	// CacheStorePrefix prefixes all persisted entries, the rest of the
	// redis key is "<cache>:<key>", so cache names must not contain ':'
	CacheStorePrefix = "hoard:cache:"
	chanCap          = 1000
)

// sendBuffer message
type bufferMessage struct {
	Cache    string
	Key      string
	Value    []byte
	Deadline time.Time
}

// redis pubsub message
type redisMessage struct {
	Cache      string `json:"c"`
	Key        string `json:"k"`
	Value      []byte `json:"v"`
	DeadlineMs int64  `json:"e,omitempty"`
	Client     []byte `json:"id"`
}

// CacheChannel message
type CacheMessage struct {
	Cache    string
	Key      string
	Value    []byte
	Deadline time.Time
}

type Client struct {
	config       *config.Redis
	client       *redis.Client
	l            *logrus.Entry
	ctx          context.Context
	id           []byte
	sendBuffer   chan *bufferMessage
	CacheChannel chan *CacheMessage
}

// New creates a new redis client
func New(cfg *config.Redis) (*Client, error) {
	// disable redis if no address is provided
	if cfg == nil || len(cfg.Address) == 0 {
		return nil, nil //nolint:nilnil
	}

	var rdb *redis.Client

	if len(cfg.SentinelAddresses) > 0 {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Address,
			SentinelAddrs:    cfg.SentinelAddresses,
			Username:         cfg.Username,
			Password:         cfg.Password,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DB:               cfg.Database,
			MaxRetries:       cfg.ConnectionAttempts,
			MaxRetryBackoff:  cfg.ConnectionCooldown.ToDuration(),
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:            cfg.Address,
			Username:        cfg.Username,
			Password:        cfg.Password,
			DB:              cfg.Database,
			MaxRetries:      cfg.ConnectionAttempts,
			MaxRetryBackoff: cfg.ConnectionCooldown.ToDuration(),
		})
	}

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	res := &Client{
		config:       cfg,
		client:       rdb,
		l:            log.PrefixedLog("redis"),
		ctx:          ctx,
		id:           instanceid.Bytes(),
		sendBuffer:   make(chan *bufferMessage, chanCap),
		CacheChannel: make(chan *CacheMessage, chanCap),
	}

	if err := res.startup(); err != nil {
		return nil, err
	}

	return res, nil
}

// PublishCache publishes a stored entry to redis async
func (c *Client) PublishCache(cache, key string, value []byte, deadline time.Time) {
	if len(cache) > 0 && len(key) > 0 {
		c.sendBuffer <- &bufferMessage{
			Cache:    cache,
			Key:      key,
			Value:    value,
			Deadline: deadline,
		}
	}
}

// GetRedisCache reads all persisted entries from redis and pushes them
// to the cache channel
func (c *Client) GetRedisCache() {
	c.l.Debug("reading persisted cache entries")

	go func() {
		iter := c.client.Scan(c.ctx, 0, CacheStorePrefix+"*", 0).Iterator()

		for iter.Next(c.ctx) {
			msg, err := c.getCacheMessage(iter.Val())
			if err != nil {
				c.l.Error("can't read cache entry: ", err)

				continue
			}

			c.CacheChannel <- msg
		}
	}()
}

// startup starts a new goroutine which multiplexes the subscription
// and the send buffer
func (c *Client) startup() error {
	ps := c.client.Subscribe(c.ctx, SyncChannelName)

	_, err := ps.Receive(c.ctx)
	if err == nil {
		go func() {
			for {
				select {
				// received message from subscription
				case msg := <-ps.Channel():
					if msg != nil && len(msg.Payload) > 0 {
						c.processReceivedMessage(msg.Payload)
					}
				// publish message from buffer
				case s := <-c.sendBuffer:
					c.publishMessageFromBuffer(s)
				}
			}
		}()
	}

	return err
}

func (c *Client) publishMessageFromBuffer(s *bufferMessage) {
	binaryMessage, err := json.Marshal(redisMessage{
		Cache:      s.Cache,
		Key:        s.Key,
		Value:      s.Value,
		DeadlineMs: deadlineToMs(s.Deadline),
		Client:     c.id,
	})
	if err != nil {
		c.l.Error("can't marshal message: ", err)

		return
	}

	var expiration time.Duration

	if !s.Deadline.IsZero() {
		expiration = time.Until(s.Deadline)
		if expiration <= 0 {
			// already expired, nothing to share
			return
		}
	}

	c.client.Publish(c.ctx, SyncChannelName, binaryMessage)
	c.client.Set(c.ctx, prefixKey(s.Cache, s.Key), s.Value, expiration)

	evt.Bus().Publish(evt.RedisCachePublished, s.Cache)
}

func (c *Client) processReceivedMessage(payload string) {
	var rm redisMessage

	if err := json.Unmarshal([]byte(payload), &rm); err != nil {
		c.l.Error("can't process received message: ", err)

		return
	}

	// ignore messages sent from this instance
	if instanceid.Equal(rm.Client) {
		return
	}

	c.CacheChannel <- &CacheMessage{
		Cache:    rm.Cache,
		Key:      rm.Key,
		Value:    rm.Value,
		Deadline: deadlineFromMs(rm.DeadlineMs),
	}

	evt.Bus().Publish(evt.RedisCacheReceived, rm.Cache)
}

func (c *Client) getCacheMessage(redisKey string) (*CacheMessage, error) {
	value, err := c.client.Get(c.ctx, redisKey).Bytes()
	if err != nil {
		return nil, err
	}

	ttl, err := c.client.TTL(c.ctx, redisKey).Result()
	if err != nil {
		return nil, err
	}

	cache, key, ok := strings.Cut(strings.TrimPrefix(redisKey, CacheStorePrefix), ":")
	if !ok {
		return nil, fmt.Errorf("unexpected key format: %s", redisKey)
	}

	var deadline time.Time

	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}

	return &CacheMessage{
		Cache:    cache,
		Key:      key,
		Value:    value,
		Deadline: deadline,
	}, nil
}

func prefixKey(cache, key string) string {
	return fmt.Sprintf("%s%s:%s", CacheStorePrefix, cache, key)
}

func deadlineToMs(deadline time.Time) int64 {
	if deadline.IsZero() {
		return 0
	}

	return deadline.UnixMilli()
}

func deadlineFromMs(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
