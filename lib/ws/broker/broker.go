package broker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	wsmodels "hire-backend/models/ws"
)

const (
	roomPrefix = "hire:room:"
	userPrefix = "hire:user:"
)

// Provider fans socket events out to rooms and users.
// Without redis the events only reach sessions of this process.
type Provider interface {
	PublishRoom(ctx context.Context, chatID string, msg wsmodels.ServerMessage) error
	PublishUser(ctx context.Context, userID string, msg wsmodels.ServerMessage) error
}

var Instance Provider

// NewHandler picks the redis broker when a client is given.
func NewHandler(ctx context.Context, client *redis.Client, hub connectionhub.Provider) {
	if client == nil {
		Instance = NewLocal(hub)
		return
	}
	redisBroker := NewRedis(client, hub)
	go redisBroker.Run(ctx)
	Instance = redisBroker
}

func NewLocal(hub connectionhub.Provider) Provider {
	return &localImpl{hub: hub}
}

type localImpl struct {
	hub connectionhub.Provider
}

func (l localImpl) PublishRoom(_ context.Context, chatID string, msg wsmodels.ServerMessage) error {
	l.hub.SendToRoom(chatID, msg)
	return nil
}

func (l localImpl) PublishUser(_ context.Context, userID string, msg wsmodels.ServerMessage) error {
	l.hub.SendToUser(userID, msg)
	return nil
}

type RedisBroker struct {
	client *redis.Client
	hub    connectionhub.Provider
}

func NewRedis(client *redis.Client, hub connectionhub.Provider) *RedisBroker {
	return &RedisBroker{
		client: client,
		hub:    hub,
	}
}

func (r *RedisBroker) PublishRoom(ctx context.Context, chatID string, msg wsmodels.ServerMessage) error {
	return r.publish(ctx, roomPrefix+chatID, msg)
}

func (r *RedisBroker) PublishUser(ctx context.Context, userID string, msg wsmodels.ServerMessage) error {
	return r.publish(ctx, userPrefix+userID, msg)
}

func (r *RedisBroker) publish(ctx context.Context, channel string, msg wsmodels.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "event encoding failed")
	}
	if err = r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return errors.Wrap(err, "event publishing failed")
	}
	return nil
}

// Run relays published events to local sessions until ctx is done.
func (r *RedisBroker) Run(ctx context.Context) {
	logger := log.WithField("worker_name", "socket_broker")
	for {
		err := r.listen(ctx)
		if ctx.Err() != nil {
			logger.Info("socket broker stopped")
			return
		}
		logger.WithError(err).Error("socket broker subscription lost, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (r *RedisBroker) listen(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, roomPrefix+"*", userPrefix+"*")
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case redisMsg, ok := <-ch:
			if !ok {
				return errors.New("subscription channel closed")
			}
			r.dispatch(redisMsg.Channel, redisMsg.Payload)
		}
	}
}

func (r *RedisBroker) dispatch(channel, payload string) {
	msg := wsmodels.ServerMessage{}
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		log.WithError(err).WithField("channel", channel).Error("broken socket event from broker")
		return
	}
	switch {
	case strings.HasPrefix(channel, roomPrefix):
		r.hub.SendToRoom(strings.TrimPrefix(channel, roomPrefix), msg)
	case strings.HasPrefix(channel, userPrefix):
		r.hub.SendToUser(strings.TrimPrefix(channel, userPrefix), msg)
	}
}
