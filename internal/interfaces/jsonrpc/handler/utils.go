package rpchandler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/tdex-network/tdex-pool/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	pubsubinfra "github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
)

var (
	errMissingWebhookID    = errors.New("missing webhook id")
	errInvalidWebhookEvent = errors.New("invalid webhook event")

	// invalidRequestErrors are caused by the content of the request rather
	// than by a failure of the daemon.
	invalidRequestErrors = []error{
		domain.ErrUnknownAsset,
		domain.ErrInsufficientBalance,
		domain.ErrAmountTooLow,
		domain.ErrReserveExhausted,
		domain.ErrArithmeticOverflow,
		domain.ErrPoolInvalidAsset,
		erc20.ErrInsufficientBalance,
		erc20.ErrInsufficientAllowance,
		erc20.ErrNotOwner,
		erc20.ErrTokenNotFound,
		erc20.ErrZeroAddress,
		hostenv.ErrMissingCaller,
		hostenv.ErrInvalidAccount,
		pubsubinfra.ErrInvalidEndpoint,
		pubsubinfra.ErrSubscriptionNotFound,
		errMissingWebhookID,
		errInvalidWebhookEvent,
	}
)

func rpcError(err error) error {
	code := json2.E_SERVER
	for _, e := range invalidRequestErrors {
		if errors.Is(err, e) {
			code = json2.E_BAD_PARAMS
			break
		}
	}
	return &json2.Error{Code: code, Message: err.Error()}
}

func parseAsset(asset string) (string, error) {
	asset = strings.ToLower(asset)
	if !domain.IsValidAsset(asset) {
		return "", fmt.Errorf("%w: %s", domain.ErrPoolInvalidAsset, asset)
	}
	return asset, nil
}

// parseTradedAsset normalizes the asset sold to the pool. A malformed asset
// can't be any of the traded ones and is reported as unknown.
func parseTradedAsset(asset string) (string, error) {
	normalized, err := parseAsset(asset)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownAsset, err)
	}
	return normalized, nil
}

func parseWebhookEvent(event string) (string, error) {
	switch strings.ToUpper(event) {
	case pubsub.EventSwapExecuted, "SWAP":
		return pubsub.EventSwapExecuted, nil
	case pubsub.EventLiquidityProvided, "LIQUIDITY":
		return pubsub.EventLiquidityProvided, nil
	case ports.AnyTopic, "ANY":
		return ports.AnyTopic, nil
	default:
		return "", fmt.Errorf("%w: unknown webhook event %q", errInvalidWebhookEvent, event)
	}
}
