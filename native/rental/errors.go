package rental

import "errors"

// Stable error taxonomy for the rental ledger. Callers compare with errors.Is
// so client tooling can distinguish "return the car first" from "no such car"
// from "not your rental".
var (
	ErrNotInitialized     = errors.New("rental: ledger not initialized")
	ErrAlreadyInitialized = errors.New("rental: ledger already initialized")
	ErrUnauthorized       = errors.New("rental: caller not authorized")
	ErrCarNotFound        = errors.New("rental: car not found")
	ErrCarAlreadyExists   = errors.New("rental: owner already has a car listed")
	ErrCarAlreadyRented   = errors.New("rental: car already rented")
	ErrCarStillRented     = errors.New("rental: car still rented")
	ErrRentalNotFound     = errors.New("rental: no matching rental record")
	ErrSelfRental         = errors.New("rental: owner cannot rent own car")
	ErrSelfReturn         = errors.New("rental: owner cannot return own car")
	ErrInvalidAmount      = errors.New("rental: amount must be positive")
	ErrInvalidDuration    = errors.New("rental: total days must be positive")
	ErrInvalidPrice       = errors.New("rental: price per day must be positive")
	ErrInvalidCommission  = errors.New("rental: commission must be non-negative")
	ErrInsufficientFunds  = errors.New("rental: insufficient balance for transfer")
	ErrInsufficientEscrow = errors.New("rental: requested amount exceeds escrow")
	ErrEscrowNotEmpty     = errors.New("rental: escrow must be withdrawn before removal")
)
