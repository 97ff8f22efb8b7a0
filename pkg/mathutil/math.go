package mathutil

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow is returned when the result does not fit into an uint64.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("arithmetic underflow")
	// ErrDivisionByZero ...
	ErrDivisionByZero = errors.New("division by zero")

	bigMaxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

func init() {
	decimal.DivisionPrecision = 8
}

//Add takes two uint64 numbers and sum them x + y and returns the result or
//ErrOverflow
func Add(x, y uint64) (uint64, error) {
	z := new(big.Int).Add(toBig(x), toBig(y))
	return fromBig(z)
}

//Sub takes two uint64 numbers and subtract them x - y and returns the result
//or ErrUnderflow
func Sub(x, y uint64) (uint64, error) {
	if y > x {
		return 0, ErrUnderflow
	}
	return x - y, nil
}

// Mul takes two uint64 numbers and multiply them x * y and returns the result
// or ErrOverflow
func Mul(x, y uint64) (uint64, error) {
	z := new(big.Int).Mul(toBig(x), toBig(y))
	return fromBig(z)
}

// Div takes two uint64 numbers and divides them x / y truncating toward zero
func Div(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	return x / y, nil
}

// DivCeil divides x / y rounding up the result
func DivCeil(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(toBig(x), toBig(y), new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return fromBig(q)
}

// Decimal converts an uint64 amount into a decimal.Decimal without losing
// precision
func Decimal(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(toBig(x), 0)
}

// DivDecimal takes two uint64 numbers and divides them x / y and returns the
// result as decimal.Decimal
func DivDecimal(x, y uint64) (decimal.Decimal, error) {
	if y == 0 {
		return decimal.Zero, ErrDivisionByZero
	}
	return Decimal(x).Div(Decimal(y)), nil
}

func toBig(x uint64) *big.Int {
	return new(big.Int).SetUint64(x)
}

func fromBig(z *big.Int) (uint64, error) {
	if z.Sign() < 0 {
		return 0, ErrUnderflow
	}
	if z.Cmp(bigMaxUint64) > 0 {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}
