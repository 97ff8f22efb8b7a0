package pubsub

import (
	"context"
	"errors"
)

// ErrSubscriptionNotFound ...
var ErrSubscriptionNotFound = errors.New("webhook not found")

// SubscriptionStore is the abstraction for any kind of database intended to
// persist the webhook subscriptions.
type SubscriptionStore interface {
	// AddSubscription adds a new subscription. Adding a subscription with an
	// already existing id is a no-op.
	AddSubscription(ctx context.Context, sub Subscription) error
	// GetSubscription returns the subscription with the given id or
	// ErrSubscriptionNotFound.
	GetSubscription(ctx context.Context, id string) (*Subscription, error)
	// RemoveSubscription removes the subscription with the given id or
	// returns ErrSubscriptionNotFound.
	RemoveSubscription(ctx context.Context, id string) error
	// GetSubscriptionsForTopic returns the subscriptions for the given topic,
	// or all of them for an unspecified (empty) topic.
	GetSubscriptionsForTopic(
		ctx context.Context, topic string,
	) ([]Subscription, error)
}
