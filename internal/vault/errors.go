package vault

import "errors"

var (
	// ErrInvalidAmount is returned for zero or unrepresentable amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance is returned when an exit or debit exceeds the claimable balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrStake wraps failures of the staking backend.
	ErrStake = errors.New("staking backend failure")
	// ErrTransfer wraps failures of the payment service.
	ErrTransfer = errors.New("transfer failure")
	// ErrUninitialized is returned by operations invoked before Init.
	ErrUninitialized = errors.New("vault is not initialized")
	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("vault is already initialized")
	// ErrUnfundedDeposit is returned when the attached value has not reached the purse.
	ErrUnfundedDeposit  = errors.New("deposit value not received")
	ErrInvalidValidator = errors.New("invalid validator identity")
	ErrMissingCaller    = errors.New("missing caller identity")
)
