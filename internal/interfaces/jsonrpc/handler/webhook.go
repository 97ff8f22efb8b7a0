package rpchandler

import (
	"net/http"

	"github.com/tdex-network/tdex-pool/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

// WebhookHandler serves the methods to manage the webhooks notified about the
// pool events.
type WebhookHandler struct {
	webhookSvc *pubsub.Service
}

func NewWebhookHandler(webhookSvc *pubsub.Service) *WebhookHandler {
	return &WebhookHandler{webhookSvc}
}

func (h *WebhookHandler) Add(
	r *http.Request, args *poolclient.AddWebhookArgs, reply *poolclient.AddWebhookReply,
) error {
	event, err := parseWebhookEvent(args.Event)
	if err != nil {
		return rpcError(err)
	}
	id, err := h.webhookSvc.AddWebhook(r.Context(), event, args.Endpoint, args.Secret)
	if err != nil {
		return rpcError(err)
	}
	reply.ID = id
	return nil
}

func (h *WebhookHandler) Remove(
	r *http.Request, args *poolclient.RemoveWebhookArgs, _ *poolclient.Empty,
) error {
	if len(args.ID) <= 0 {
		return rpcError(errMissingWebhookID)
	}
	if err := h.webhookSvc.RemoveWebhook(r.Context(), args.ID); err != nil {
		return rpcError(err)
	}
	return nil
}

func (h *WebhookHandler) List(
	r *http.Request, args *poolclient.ListWebhooksArgs, reply *poolclient.ListWebhooksReply,
) error {
	event := args.Event
	if len(event) > 0 {
		var err error
		if event, err = parseWebhookEvent(event); err != nil {
			return rpcError(err)
		}
	}

	hooks, err := h.webhookSvc.ListWebhooks(r.Context(), event)
	if err != nil {
		return rpcError(err)
	}
	reply.Webhooks = make([]poolclient.WebhookInfo, 0, len(hooks))
	for _, hook := range hooks {
		reply.Webhooks = append(reply.Webhooks, poolclient.WebhookInfo{
			ID:        hook.Id,
			Event:     hook.Event,
			Endpoint:  hook.Endpoint,
			IsSecured: hook.IsSecured,
		})
	}
	return nil
}
