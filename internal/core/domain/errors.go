package domain

import "errors"

var (
	// ErrUnknownAsset is returned when the given asset matches none of those
	// tracked by the pool.
	ErrUnknownAsset = errors.New("asset is not tracked by the pool")
	// ErrInsufficientBalance is returned when an account has not enough funds,
	// or has not authorized the pool to move enough of them.
	ErrInsufficientBalance = errors.New("insufficient balance or allowance")
	// ErrTransferFailed is returned when the token service rejects a transfer.
	ErrTransferFailed = errors.New("token transfer failed")
	// ErrArithmeticOverflow ...
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrReserveExhausted is returned when one of the reserves is empty or the
	// trade would drain it.
	ErrReserveExhausted = errors.New("pool reserve is exhausted")
	// ErrAmountTooLow is returned for trades that would pay out nothing.
	ErrAmountTooLow = errors.New("amount is too low")
	// ErrReentrantCall is returned when an operation is invoked while another
	// one is still running on the same pool.
	ErrReentrantCall = errors.New("reentrant call into the pool")
	// ErrReservesDrifted is returned when reserves changed between the moment
	// the price was computed and the payout.
	ErrReservesDrifted = errors.New("pool reserves changed during the operation")
	// ErrLpTokenDeploy is returned when the pool token could not be
	// instantiated. No pool exists in this case.
	ErrLpTokenDeploy = errors.New("failed at instantiating the LP token")

	// ErrPoolInvalidAccount ...
	ErrPoolInvalidAccount = errors.New("pool account must not be empty")
	// ErrPoolInvalidAsset ...
	ErrPoolInvalidAsset = errors.New("asset must be a 20 bytes hex string")
	// ErrPoolIdenticalAssets ...
	ErrPoolIdenticalAssets = errors.New("pool assets must be distinct")
	// ErrPoolInvalidReserveSource ...
	ErrPoolInvalidReserveSource = errors.New(
		"reserve source must be either balance or supply",
	)
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPoolAlreadyExists ...
	ErrPoolAlreadyExists = errors.New("pool already exists")
)
