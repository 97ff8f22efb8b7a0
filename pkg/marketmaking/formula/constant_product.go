// Package formula defines the formulas that implements the MakingFormula interface
package formula

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

const ConstantProductType = 1

var (
	// ErrAmountTooLow ...
	ErrAmountTooLow = errors.New("provided amount is too low")
	// ErrAmountTooBig ...
	ErrAmountTooBig = errors.New("provided amount is too big")
	// ErrBalanceTooLow ...
	ErrBalanceTooLow = errors.New("reserve balance amount is too low")
)

// Rounding selects how the reserve retained by the pool, k / (in + amount),
// is rounded to an integer.
type Rounding int

const (
	// RoundPoolFavoring rounds the retained reserve up so that the product of
	// the reserves after a trade is never lower than before.
	RoundPoolFavoring Rounding = iota
	// RoundTruncate truncates the retained reserve toward zero. The trader may
	// receive up to one unit more than the exact curve amount.
	RoundTruncate
)

func (r Rounding) String() string {
	switch r {
	case RoundPoolFavoring:
		return "pool"
	case RoundTruncate:
		return "truncate"
	default:
		return "unknown"
	}
}

// ParseRounding returns the Rounding with the given name.
func ParseRounding(name string) (Rounding, error) {
	switch name {
	case "pool", "":
		return RoundPoolFavoring, nil
	case "truncate":
		return RoundTruncate, nil
	default:
		return 0, errors.New("rounding must be either pool or truncate")
	}
}

// ConstantProduct defines an AMM strategy where the product of the two
// reserves is kept constant across every trade.
type ConstantProduct struct {
	Rounding Rounding
}

var _ marketmaking.MakingFormula = ConstantProduct{}

// ComputeSwap returns the amount of the ask asset a trader receives for value
// units of the offer asset, given the ask and offer reserves before the trade:
// askSupply - (offerSupply * askSupply) / (offerSupply + value).
// The division is truncated toward zero.
func ComputeSwap(askSupply, offerSupply, value uint64) (uint64, error) {
	return ConstantProduct{RoundTruncate}.OutGivenIn(&marketmaking.FormulaOpts{
		BalanceIn:  offerSupply,
		BalanceOut: askSupply,
	}, value)
}

// SpotPrice calculates the spot price given the balances of the two reserves,
// expressed as units of the out asset for one unit of the in asset.
func (ConstantProduct) SpotPrice(
	opts *marketmaking.FormulaOpts,
) (spotPrice decimal.Decimal, err error) {
	if opts.BalanceIn == 0 || opts.BalanceOut == 0 {
		err = ErrBalanceTooLow
		return
	}

	return mathutil.DivDecimal(opts.BalanceOut, opts.BalanceIn)
}

// OutGivenIn returns the amountOut of asset that will be exchanged for the given amountIn.
// An amountIn of 0 always returns 0.
func (c ConstantProduct) OutGivenIn(
	opts *marketmaking.FormulaOpts, amountIn uint64,
) (uint64, error) {
	if opts.BalanceIn == 0 || opts.BalanceOut == 0 {
		return 0, ErrBalanceTooLow
	}

	k, err := mathutil.Mul(opts.BalanceIn, opts.BalanceOut)
	if err != nil {
		return 0, err
	}
	balanceIn, err := mathutil.Add(opts.BalanceIn, amountIn)
	if err != nil {
		return 0, err
	}

	retained, err := c.div(k, balanceIn)
	if err != nil {
		return 0, err
	}

	amountOut, err := mathutil.Sub(opts.BalanceOut, retained)
	if err != nil {
		return 0, err
	}
	if amountOut >= opts.BalanceOut {
		return 0, ErrAmountTooBig
	}
	return amountOut, nil
}

// InGivenOut returns the minimum amountIn of assets that will be needed for
// having at least the desired amountOut in return.
func (c ConstantProduct) InGivenOut(
	opts *marketmaking.FormulaOpts, amountOut uint64,
) (uint64, error) {
	if opts.BalanceIn == 0 || opts.BalanceOut == 0 {
		return 0, ErrBalanceTooLow
	}
	if amountOut == 0 {
		return 0, ErrAmountTooLow
	}
	if amountOut >= opts.BalanceOut {
		return 0, ErrAmountTooBig
	}

	k, err := mathutil.Mul(opts.BalanceIn, opts.BalanceOut)
	if err != nil {
		return 0, err
	}

	var minBalanceIn uint64
	switch c.Rounding {
	case RoundTruncate:
		// floor(k / (in + x)) <= out - amountOut
		// <=> in + x >= floor(k / (out - amountOut + 1)) + 1
		q, _ := mathutil.Div(k, opts.BalanceOut-amountOut+1)
		if minBalanceIn, err = mathutil.Add(q, 1); err != nil {
			return 0, err
		}
	default:
		// ceil(k / (in + x)) <= out - amountOut
		// <=> in + x >= ceil(k / (out - amountOut))
		if minBalanceIn, err = mathutil.DivCeil(
			k, opts.BalanceOut-amountOut,
		); err != nil {
			return 0, err
		}
	}

	if minBalanceIn <= opts.BalanceIn {
		return 0, ErrAmountTooLow
	}
	return minBalanceIn - opts.BalanceIn, nil
}

func (ConstantProduct) FormulaType() int {
	return ConstantProductType
}

func (c ConstantProduct) div(x, y uint64) (uint64, error) {
	if c.Rounding == RoundTruncate {
		return mathutil.Div(x, y)
	}
	return mathutil.DivCeil(x, y)
}
