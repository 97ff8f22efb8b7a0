package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

const (
	EventSwapExecuted      = "SWAP_EXECUTED"
	EventLiquidityProvided = "LIQUIDITY_PROVIDED"
)

var events = map[string]struct{}{
	EventSwapExecuted:      {},
	EventLiquidityProvided: {},
	ports.AnyTopic:         {},
}

// WebhookInfo contains the info about a subscription.
type WebhookInfo struct {
	Id        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// Service publishes the pool events to the subscribed webhooks and to the
// given event streams. A Service without a pubsub backend only feeds the
// streams.
type Service struct {
	pubsub  ports.SecurePubSub
	streams []ports.EventStream
}

func NewService(
	pubsub ports.SecurePubSub, streams ...ports.EventStream,
) *Service {
	return &Service{pubsub, streams}
}

func (s *Service) SecurePubSub() ports.SecurePubSub {
	return s.pubsub
}

func (s *Service) AddWebhook(
	_ context.Context, event, endpoint, secret string,
) (string, error) {
	if _, ok := events[event]; !ok {
		return "", fmt.Errorf("invalid webhook event type %q", event)
	}
	if s.pubsub == nil {
		return "", fmt.Errorf("webhooks are disabled")
	}
	return s.pubsub.Subscribe(event, endpoint, secret)
}

func (s *Service) RemoveWebhook(_ context.Context, id string) error {
	if s.pubsub == nil {
		return fmt.Errorf("webhooks are disabled")
	}
	return s.pubsub.Unsubscribe(ports.UnspecifiedTopic, id)
}

func (s *Service) ListWebhooks(
	_ context.Context, event string,
) ([]WebhookInfo, error) {
	if s.pubsub == nil {
		return nil, nil
	}
	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			Id:        sub.Id(),
			Event:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

func (s *Service) PublishSwapEvent(
	pool domain.Pool, receipt domain.SwapReceipt,
) error {
	event := EventSwapExecuted
	payload := map[string]interface{}{
		"event": event,
		"pool":  getPoolPayload(pool),
		"swap": map[string]interface{}{
			"id":         receipt.ID,
			"account":    receipt.Account,
			"asset_in":   receipt.AssetIn,
			"amount_in":  receipt.AmountIn,
			"asset_out":  receipt.AssetOut,
			"amount_out": receipt.AmountOut,
		},
		"timestamp": receipt.Timestamp,
		"date":      time.Unix(receipt.Timestamp, 0).Format(time.RFC3339),
	}
	return s.publish(event, payload)
}

func (s *Service) PublishLiquidityEvent(
	pool domain.Pool, receipt domain.LiquidityReceipt,
) error {
	event := EventLiquidityProvided
	payload := map[string]interface{}{
		"event": event,
		"pool":  getPoolPayload(pool),
		"deposit": map[string]interface{}{
			"id":        receipt.ID,
			"account":   receipt.Account,
			"amount_0":  receipt.Amount0,
			"amount_1":  receipt.Amount1,
			"lp_minted": receipt.LpMinted,
		},
		"reserves": map[string]uint64{
			"reserve_0": receipt.Reserve0,
			"reserve_1": receipt.Reserve1,
		},
		"timestamp": receipt.Timestamp,
		"date":      time.Unix(receipt.Timestamp, 0).Format(time.RFC3339),
	}
	return s.publish(event, payload)
}

func (s *Service) publish(event string, payload map[string]interface{}) error {
	message, _ := json.Marshal(payload)
	for _, stream := range s.streams {
		stream.Broadcast(event, message)
	}
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Publish(event, string(message))
}

func getPoolPayload(pool domain.Pool) map[string]string {
	return map[string]string{
		"account":  pool.Account,
		"token_0":  pool.Token0,
		"token_1":  pool.Token1,
		"lp_token": pool.LpToken,
	}
}
