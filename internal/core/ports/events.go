package ports

import "github.com/tdex-network/tdex-pool/internal/core/domain"

// EventPublisher notifies the outer world about the operations executed by
// the pool.
type EventPublisher interface {
	PublishSwapEvent(pool domain.Pool, receipt domain.SwapReceipt) error
	PublishLiquidityEvent(pool domain.Pool, receipt domain.LiquidityReceipt) error
}
