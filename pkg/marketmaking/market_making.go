package marketmaking

import "github.com/shopspring/decimal"

// MakingStrategy defines the automated market making strategy, using a formula to be applied to calculate the amount returned by the next trade.
type MakingStrategy struct {
	name        string
	description string
	formula     MakingFormula
}

// FormulaOpts defines the reserves of the offered (in) and asked (out) assets
// a formula is applied to.
type FormulaOpts struct {
	BalanceIn  uint64
	BalanceOut uint64
}

// MakingFormula defines the interface for implementing the formula to derive the spot price and the trade amounts
type MakingFormula interface {
	SpotPrice(opts *FormulaOpts) (spotPrice decimal.Decimal, err error)
	OutGivenIn(opts *FormulaOpts, amountIn uint64) (amountOut uint64, err error)
	InGivenOut(opts *FormulaOpts, amountOut uint64) (amountIn uint64, err error)
	FormulaType() int
}

// NewStrategyFromFormula returns the strategy struct with the name
func NewStrategyFromFormula(name, description string, formula MakingFormula) *MakingStrategy {
	strategy := &MakingStrategy{
		name:        name,
		description: description,
		formula:     formula,
	}

	return strategy
}

// IsZero checks if the given strategy is the zero value
func (ms MakingStrategy) IsZero() bool {
	return ms == MakingStrategy{}
}

// Name returns the short name of the MM strategy
func (ms *MakingStrategy) Name() string {
	return ms.name
}

// Description returns the long description of the MM strategy
func (ms *MakingStrategy) Description() string {
	return ms.description
}

// Formula returns the mathematical formula of the MM strategy
func (ms *MakingStrategy) Formula() MakingFormula {
	return ms.formula
}
