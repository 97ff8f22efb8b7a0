package pubsub

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRequestTimeout = 15 * time.Second
	// DefaultRateLimit is the max number of requests per second sent to the
	// subscribed endpoints.
	DefaultRateLimit = 100
)

type service struct {
	store    SubscriptionStore
	notifier *notifier
	breakers *circuitbreaker.Group
	limiter  ratelimit.Limiter
}

// NewService returns a webhook pubsub service storing subscriptions in the
// given store. Zero timeout and rate limit are replaced by the defaults.
func NewService(
	store SubscriptionStore, requestTimeout time.Duration, rateLimit int,
) (ports.SecurePubSub, error) {
	if store == nil {
		return nil, fmt.Errorf("missing subscription store")
	}
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	return &service{
		store:    store,
		notifier: newNotifier(requestTimeout),
		breakers: circuitbreaker.NewGroup(circuitbreaker.Opts{}),
		limiter:  ratelimit.New(rateLimit),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	return ws.addSubscription(sub)
}

func (ws *service) SubscribeWithID(
	id, topic, endpoint, secret string,
) (string, error) {
	sub, err := NewSubscriptionWithID(id, topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	return ws.addSubscription(sub)
}

func (ws *service) Unsubscribe(_, id string) error {
	return ws.store.RemoveSubscription(context.Background(), id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	return ws.publishForTopic(topic, message)
}

func (ws *service) addSubscription(sub *Subscription) (string, error) {
	if err := ws.store.AddSubscription(context.Background(), *sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	subs := ws.getSubscriptionsForTopic(topic)
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic := ws.getSubscriptionsForTopic(ports.AnyTopic)
		subs = append(subs, subsForAnyTopic...)
	}
	return subs
}

func (ws *service) publishForTopic(topic, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) getSubscriptionsForTopic(topic string) subscriptions {
	subs, err := ws.store.GetSubscriptionsForTopic(context.Background(), topic)
	if err != nil {
		log.WithError(err).Warnf("failed to get webhooks for topic %s", topic)
		return nil
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
}

// doRequest notifies the subscription through the circuit breaker of its
// endpoint. Requests to an endpoint that keeps failing are rejected without
// being sent until its breaker closes again.
func (ws *service) doRequest(sub Subscription, payload string) error {
	ws.limiter.Take()

	return ws.breakers.Execute(sub.Endpoint, func() error {
		return ws.notifier.notify(sub, payload)
	})
}
