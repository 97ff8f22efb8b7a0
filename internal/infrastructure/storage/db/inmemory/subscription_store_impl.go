package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
)

// SubscriptionStoreImpl represents an in memory storage
type SubscriptionStoreImpl struct {
	subs map[string]pubsub.Subscription

	lock *sync.RWMutex
}

// NewSubscriptionStoreImpl returns a new empty SubscriptionStoreImpl
func NewSubscriptionStoreImpl() *SubscriptionStoreImpl {
	return &SubscriptionStoreImpl{
		subs: map[string]pubsub.Subscription{},
		lock: &sync.RWMutex{},
	}
}

func (s *SubscriptionStoreImpl) AddSubscription(
	_ context.Context, sub pubsub.Subscription,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.subs[sub.ID]; ok {
		return nil
	}
	s.subs[sub.ID] = sub
	return nil
}

func (s *SubscriptionStoreImpl) GetSubscription(
	_ context.Context, id string,
) (*pubsub.Subscription, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, pubsub.ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (s *SubscriptionStoreImpl) RemoveSubscription(
	_ context.Context, id string,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.subs[id]; !ok {
		return pubsub.ErrSubscriptionNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *SubscriptionStoreImpl) GetSubscriptionsForTopic(
	_ context.Context, topic string,
) ([]pubsub.Subscription, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	subs := make([]pubsub.Subscription, 0)
	for _, sub := range s.subs {
		if topic == ports.UnspecifiedTopic || sub.Event == topic {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}
