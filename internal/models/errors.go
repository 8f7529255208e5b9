package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key violation")
	ErrInvalidID       = errors.New("invalid ID format")
	ErrNoOddsData      = errors.New("no odds data available")
	ErrBetslipRequired = errors.New("betslip ID is required")
	ErrAlreadyResolved = errors.New("reconciliation already resolved")
)
