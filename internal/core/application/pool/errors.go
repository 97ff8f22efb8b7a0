package pool

import (
	"errors"
	"fmt"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

// formulaError maps the errors of the swap formula to those of the domain.
func formulaError(err error) error {
	switch {
	case errors.Is(err, mathutil.ErrOverflow):
		return fmt.Errorf("%w: %s", domain.ErrArithmeticOverflow, err)
	case errors.Is(err, formula.ErrBalanceTooLow),
		errors.Is(err, formula.ErrAmountTooBig):
		return fmt.Errorf("%w: %s", domain.ErrReserveExhausted, err)
	case errors.Is(err, formula.ErrAmountTooLow):
		return fmt.Errorf("%w: %s", domain.ErrAmountTooLow, err)
	default:
		return err
	}
}

func transferError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrTransferFailed, err)
}
