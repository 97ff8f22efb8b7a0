package formula

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

func TestComputeSwap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		askSupply     uint64
		offerSupply   uint64
		value         uint64
		wantAmountOut uint64
	}{
		{"balanced reserves", 1000, 1000, 100, 91},
		{"zero value", 1000, 1000, 0, 0},
		{"zero value unbalanced", 650000, 13, 0, 0},
		{"unbalanced reserves", 650000000, 100000000, 10000, 64994},
		{"big value", 1000, 1000, 100000, 991},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			amountOut, err := ComputeSwap(tt.askSupply, tt.offerSupply, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmountOut, amountOut)
		})
	}

	failingTests := []struct {
		name        string
		askSupply   uint64
		offerSupply uint64
		value       uint64
		wantError   error
	}{
		{"zero ask supply", 0, 1000, 100, ErrBalanceTooLow},
		{"zero offer supply", 1000, 0, 100, ErrBalanceTooLow},
		{"zero offer supply and value", 1000, 0, 0, ErrBalanceTooLow},
		{"product overflow", math.MaxUint32 + 1, math.MaxUint32 + 1, 1, mathutil.ErrOverflow},
		{"sum overflow", 1, math.MaxUint64, 1, mathutil.ErrOverflow},
		{"drains the reserve", 1, 1, 5, ErrAmountTooBig},
	}

	for i := range failingTests {
		tt := failingTests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSwap(tt.askSupply, tt.offerSupply, tt.value)
			require.ErrorIs(t, err, tt.wantError)
		})
	}
}

func TestConstantProduct_OutGivenIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		rounding      Rounding
		opts          *marketmaking.FormulaOpts
		amountIn      uint64
		wantAmountOut uint64
	}{
		{
			"truncate",
			RoundTruncate,
			&marketmaking.FormulaOpts{BalanceIn: 1000, BalanceOut: 1000},
			100,
			91,
		},
		{
			"pool favoring",
			RoundPoolFavoring,
			&marketmaking.FormulaOpts{BalanceIn: 1000, BalanceOut: 1000},
			100,
			90,
		},
		{
			"pool favoring exact division",
			RoundPoolFavoring,
			&marketmaking.FormulaOpts{BalanceIn: 1000, BalanceOut: 2000},
			1000,
			1000,
		},
		{
			"pool favoring never drains the reserve",
			RoundPoolFavoring,
			&marketmaking.FormulaOpts{BalanceIn: 1, BalanceOut: 1},
			5,
			0,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			amountOut, err := ConstantProduct{tt.rounding}.OutGivenIn(tt.opts, tt.amountIn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmountOut, amountOut)
		})
	}
}

func TestConstantProduct_Invariants(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		offer := uint64(r.Int63n(math.MaxInt32)) + 1
		ask := uint64(r.Int63n(math.MaxInt32)) + 1
		value := uint64(r.Int63n(math.MaxInt32)) + 1
		opts := &marketmaking.FormulaOpts{BalanceIn: offer, BalanceOut: ask}
		k := offer * ask

		out, err := ConstantProduct{RoundPoolFavoring}.OutGivenIn(opts, value)
		require.NoError(t, err)
		require.Less(t, out, ask)
		require.GreaterOrEqual(t, (offer+value)*(ask-out), k)

		out, err = ConstantProduct{RoundTruncate}.OutGivenIn(opts, value)
		if err != nil {
			require.ErrorIs(t, err, ErrAmountTooBig)
			continue
		}
		require.Less(t, out, ask)
		// truncation can return at most one unit of the retained reserve
		require.LessOrEqual(t, (offer+value)*(ask-out), k)
		require.Greater(t, (offer+value)*(ask-out+1), k)
	}
}

func TestConstantProduct_RoundTrip(t *testing.T) {
	t.Parallel()

	formula := ConstantProduct{RoundPoolFavoring}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		reserveA := uint64(r.Int63n(1e9)) + 1
		reserveB := uint64(r.Int63n(1e9)) + 1
		value := uint64(r.Int63n(1e9)) + 1

		outB, err := formula.OutGivenIn(&marketmaking.FormulaOpts{
			BalanceIn: reserveA, BalanceOut: reserveB,
		}, value)
		require.NoError(t, err)

		reserveA += value
		reserveB -= outB

		outA, err := formula.OutGivenIn(&marketmaking.FormulaOpts{
			BalanceIn: reserveB, BalanceOut: reserveA,
		}, outB)
		require.NoError(t, err)
		require.LessOrEqual(t, outA, value)
	}
}

func TestConstantProduct_InGivenOut(t *testing.T) {
	t.Parallel()

	for _, rounding := range []Rounding{RoundPoolFavoring, RoundTruncate} {
		formula := ConstantProduct{rounding}
		opts := &marketmaking.FormulaOpts{BalanceIn: 100000000, BalanceOut: 650000000}

		for _, amountOut := range []uint64{1, 91, 10000, 64994, 100000000} {
			amountIn, err := formula.InGivenOut(opts, amountOut)
			require.NoError(t, err)

			got, err := formula.OutGivenIn(opts, amountIn)
			require.NoError(t, err)
			require.GreaterOrEqual(t, got, amountOut, rounding.String())

			got, err = formula.OutGivenIn(opts, amountIn-1)
			require.NoError(t, err)
			require.Less(t, got, amountOut, rounding.String())
		}
	}

	failingTests := []struct {
		name      string
		opts      *marketmaking.FormulaOpts
		amountOut uint64
		wantError error
	}{
		{
			"InGivenOut fails if provided amount is 0",
			&marketmaking.FormulaOpts{BalanceIn: 1000, BalanceOut: 1000},
			0,
			ErrAmountTooLow,
		},
		{
			"InGivenOut fails if provided amount is equal or exceeds the balance",
			&marketmaking.FormulaOpts{BalanceIn: 1000, BalanceOut: 1000},
			1000,
			ErrAmountTooBig,
		},
		{
			"InGivenOut fails with empty reserves",
			&marketmaking.FormulaOpts{BalanceIn: 0, BalanceOut: 1000},
			10,
			ErrBalanceTooLow,
		},
	}

	for i := range failingTests {
		tt := failingTests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConstantProduct{}.InGivenOut(tt.opts, tt.amountOut)
			assert.Equal(t, tt.wantError, err)
		})
	}
}

func TestConstantProduct_SpotPrice(t *testing.T) {
	t.Parallel()

	spotPrice, err := ConstantProduct{}.SpotPrice(&marketmaking.FormulaOpts{
		BalanceIn:  2 * 100000000,
		BalanceOut: 2 * 9760 * 100000000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9760), spotPrice.IntPart())

	_, err = ConstantProduct{}.SpotPrice(&marketmaking.FormulaOpts{BalanceIn: 0, BalanceOut: 1})
	assert.Equal(t, ErrBalanceTooLow, err)
}

func TestParseRounding(t *testing.T) {
	t.Parallel()

	r, err := ParseRounding("truncate")
	require.NoError(t, err)
	require.Equal(t, RoundTruncate, r)

	r, err = ParseRounding("")
	require.NoError(t, err)
	require.Equal(t, RoundPoolFavoring, r)

	_, err = ParseRounding("ceil")
	require.Error(t, err)
}
