package erc20

import "errors"

var (
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance ...
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	// ErrNotOwner is returned when minting from an account other than the
	// token owner.
	ErrNotOwner = errors.New("only the token owner can mint")
	// ErrTokenNotFound ...
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenAlreadyExists ...
	ErrTokenAlreadyExists = errors.New("token already exists")
	// ErrZeroAddress is returned when an account or token address is empty.
	ErrZeroAddress = errors.New("address must not be empty")
	// ErrMissingName ...
	ErrMissingName = errors.New("token name and symbol must not be empty")
)
