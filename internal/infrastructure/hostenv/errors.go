package hostenv

import "errors"

var (
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInsufficientFunds is returned when an account has not enough native
	// currency.
	ErrInsufficientFunds = errors.New("insufficient native balance")
	// ErrUnknownCode is returned when instantiating a code hash that has no
	// registered template.
	ErrUnknownCode = errors.New("unknown code hash")
	// ErrCodeAlreadyRegistered ...
	ErrCodeAlreadyRegistered = errors.New("code hash already registered")
	// ErrMissingCaller is returned when the caller of the current call is not
	// known.
	ErrMissingCaller = errors.New("missing caller in context")
	// ErrInvalidAccount ...
	ErrInvalidAccount = errors.New("account id must not be empty")
)
