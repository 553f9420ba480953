// Package feed publishes change events for investments and transactions and
// lets callers subscribe to a single user's stream. Redis pub/sub carries the
// events so every instance behind a load balancer sees every mutation.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/cache"
)

const channelPrefix = "feed:user:"

// Service fans feed events out to per-user subscribers
type Service struct {
	redis  cache.RedisClient
	logger *zap.Logger

	mu      sync.Mutex
	subs    map[uuid.UUID]map[uint64]func(entities.FeedEvent)
	nextID  uint64
	cancels map[uuid.UUID]context.CancelFunc
}

func NewService(redis cache.RedisClient, logger *zap.Logger) *Service {
	return &Service{
		redis:   redis,
		logger:  logger,
		subs:    make(map[uuid.UUID]map[uint64]func(entities.FeedEvent)),
		cancels: make(map[uuid.UUID]context.CancelFunc),
	}
}

// Publish emits a change event for a user's record
func (s *Service) Publish(ctx context.Context, table string, action entities.FeedAction, userID, recordID uuid.UUID, record map[string]interface{}) {
	event := entities.FeedEvent{
		Table:    table,
		Action:   action,
		UserID:   userID,
		RecordID: recordID,
		Record:   record,
		At:       time.Now().UTC(),
	}

	if err := s.redis.Publish(ctx, channelPrefix+userID.String(), event); err != nil {
		s.logger.Warn("failed to publish feed event",
			zap.String("table", table),
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// Subscribe registers onChange for a user's events and returns an unsubscribe
// function. The first subscriber for a user opens the Redis subscription; the
// last one leaving closes it.
func (s *Service) Subscribe(ownerID uuid.UUID, onChange func(entities.FeedEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	if s.subs[ownerID] == nil {
		s.subs[ownerID] = make(map[uint64]func(entities.FeedEvent))
		ctx, cancel := context.WithCancel(context.Background())
		s.cancels[ownerID] = cancel
		go s.pump(ctx, ownerID)
	}
	s.subs[ownerID][id] = onChange

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.subs[ownerID], id)
		if len(s.subs[ownerID]) == 0 {
			delete(s.subs, ownerID)
			if cancel, ok := s.cancels[ownerID]; ok {
				cancel()
				delete(s.cancels, ownerID)
			}
		}
	}
}

func (s *Service) pump(ctx context.Context, ownerID uuid.UUID) {
	pubsub := s.redis.Subscribe(ctx, channelPrefix+ownerID.String())
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event entities.FeedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn("failed to decode feed event", zap.Error(err))
				continue
			}
			s.dispatch(ownerID, event)
		}
	}
}

func (s *Service) dispatch(ownerID uuid.UUID, event entities.FeedEvent) {
	s.mu.Lock()
	handlers := make([]func(entities.FeedEvent), 0, len(s.subs[ownerID]))
	for _, h := range s.subs[ownerID] {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Close cancels every open per-user subscription
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ownerID, cancel := range s.cancels {
		cancel()
		delete(s.cancels, ownerID)
		delete(s.subs, ownerID)
	}
}

// RecordJSON converts an entity to the generic record map carried by events
func RecordJSON(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}
	return record
}

// ChannelFor returns the Redis channel name for a user, exposed for tests
func ChannelFor(userID uuid.UUID) string {
	return fmt.Sprintf("%s%s", channelPrefix, userID)
}
