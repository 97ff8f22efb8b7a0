package stats

import "github.com/prometheus/client_golang/prometheus"

const namespace = "pool"

var (
	// SwapsTotal counts the executed swaps by offered asset.
	SwapsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swaps_total",
		Help:      "Number of executed swaps.",
	}, []string{"asset_in"})

	// SwapVolume counts the amounts moved by the swaps, by asset and
	// direction (in or out of the pool).
	SwapVolume = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swap_volume_total",
		Help:      "Amount of assets traded, by direction.",
	}, []string{"asset", "direction"})

	// LiquidityProvided counts the amounts deposited into the pool.
	LiquidityProvided = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "liquidity_provided_total",
		Help:      "Amount of assets deposited as liquidity.",
	}, []string{"asset"})

	// FailedOperations counts the rejected operations.
	FailedOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failed_operations_total",
		Help:      "Number of rejected operations.",
	}, []string{"operation"})

	// Reserves tracks the latest known reserve of each asset.
	Reserves = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reserve",
		Help:      "Latest known reserve of the pool assets.",
	}, []string{"asset"})
)

func init() {
	prometheus.MustRegister(
		SwapsTotal, SwapVolume, LiquidityProvided, FailedOperations, Reserves,
	)
}

// RecordSwap updates the metrics for an executed swap.
func RecordSwap(assetIn, assetOut string, amountIn, amountOut uint64) {
	SwapsTotal.WithLabelValues(assetIn).Inc()
	SwapVolume.WithLabelValues(assetIn, "in").Add(float64(amountIn))
	SwapVolume.WithLabelValues(assetOut, "out").Add(float64(amountOut))
}

// RecordLiquidity updates the metrics for a deposit of liquidity.
func RecordLiquidity(asset string, amount uint64) {
	LiquidityProvided.WithLabelValues(asset).Add(float64(amount))
}

// RecordFailure increments the counter of rejected operations.
func RecordFailure(operation string) {
	FailedOperations.WithLabelValues(operation).Inc()
}

// RecordReserves updates the reserve gauges.
func RecordReserves(asset0 string, reserve0 uint64, asset1 string, reserve1 uint64) {
	Reserves.WithLabelValues(asset0).Set(float64(reserve0))
	Reserves.WithLabelValues(asset1).Set(float64(reserve1))
}
