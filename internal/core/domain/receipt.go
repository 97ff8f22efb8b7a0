package domain

// SwapReceipt contains the info about an executed swap.
type SwapReceipt struct {
	ID        string
	Account   string
	AssetIn   string
	AssetOut  string
	AmountIn  uint64
	AmountOut uint64
	Timestamp int64
}

// LiquidityReceipt contains the info about a deposit of liquidity into the
// pool. LpMinted is always 0 since providing liquidity doesn't issue any pool
// share.
type LiquidityReceipt struct {
	ID        string
	Account   string
	Amount0   uint64
	Amount1   uint64
	Reserve0  uint64
	Reserve1  uint64
	LpMinted  uint64
	Timestamp int64
}
