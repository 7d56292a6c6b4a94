package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount     = errors.New("amount must be a finite, non-negative number")
	ErrMoneyUnderflow    = errors.New("subtraction would produce a negative amount")
	ErrInvalidFactor     = errors.New("factor must not be negative")
	ErrInvalidDivisor    = errors.New("divisor must be positive")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrEmptySequence     = errors.New("sequence must not be empty")

	// Ledger errors
	ErrEntityNotFound        = errors.New("entity not found")
	ErrInvalidEntityType     = errors.New("entity type must be customer or supplier")
	ErrInvalidDirection      = errors.New("direction must be credit or debit")
	ErrCreditLimitExceeded   = errors.New("credit limit exceeded")
	ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

	// Inventory errors
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock for outgoing movement")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidMovementKind = errors.New("movement kind must be in, out or adjustment")
)
