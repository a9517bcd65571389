package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")
	ErrValidation = errors.New("invalid input")

	// * Business errors.
	ErrInsufficientStock   = errors.New("not enough accounts in stock")
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrProductInUse        = errors.New("product is referenced by orders")
	ErrOrderNotPayable     = errors.New("order is not awaiting payment")

	// * Infrastructure errors.
	ErrGateway = errors.New("payment gateway error")
	ErrRowBusy = errors.New("row is locked by another operation")
	ErrStorage = errors.New("storage error")
)
