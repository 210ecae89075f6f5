package ledger

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrExpenseNotFound = errors.New("expense not found")

	ErrDuplicateBooking = errors.New("booking id already exists")
	ErrAlreadyReverted  = errors.New("entry is a reversal and cannot be reverted")
	ErrInvalidEntry     = errors.New("invalid ledger entry")
)
