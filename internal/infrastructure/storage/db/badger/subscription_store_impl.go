package dbbadger

import (
	"context"

	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
	"github.com/timshannon/badgerhold/v4"
)

type subscriptionStoreImpl struct {
	store *badgerhold.Store
}

// NewSubscriptionStoreImpl initialize a badger implementation of the
// pubsub.SubscriptionStore
func NewSubscriptionStoreImpl(store *badgerhold.Store) pubsub.SubscriptionStore {
	return subscriptionStoreImpl{store}
}

func (s subscriptionStoreImpl) AddSubscription(
	_ context.Context, sub pubsub.Subscription,
) error {
	if err := s.store.Insert(sub.ID, sub); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return err
	}
	return nil
}

func (s subscriptionStoreImpl) GetSubscription(
	_ context.Context, id string,
) (*pubsub.Subscription, error) {
	var sub pubsub.Subscription
	if err := s.store.Get(id, &sub); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, pubsub.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s subscriptionStoreImpl) RemoveSubscription(
	_ context.Context, id string,
) error {
	if err := s.store.Delete(id, pubsub.Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return pubsub.ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (s subscriptionStoreImpl) GetSubscriptionsForTopic(
	_ context.Context, topic string,
) ([]pubsub.Subscription, error) {
	var query *badgerhold.Query
	if topic != ports.UnspecifiedTopic {
		query = badgerhold.Where("Event").Eq(topic)
	}

	var subs []pubsub.Subscription
	if err := s.store.Find(&subs, query); err != nil {
		return nil, err
	}
	return subs, nil
}
