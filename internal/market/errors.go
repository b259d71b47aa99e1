package market

import "errors"

// Caller-visible errors. All are recoverable; the HTTP layer maps each to a
// distinct response code so a renter can tell "try another device" apart
// from "fix your request".
var (
	ErrDeviceNotFound         = errors.New("device not found")
	ErrDeviceNotAvailable     = errors.New("device is not available")
	ErrInvalidStateTransition = errors.New("invalid device state transition")
	ErrInvalidDuration        = errors.New("rental duration must be greater than zero")
	ErrInvalidPricing         = errors.New("device pricing must derive a positive hourly rate")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidOrderState      = errors.New("order is not in a valid state for this operation")
	ErrIncompatibleTemplate   = errors.New("template requirements are not satisfied by the device")
	ErrConcurrentModification = errors.New("record changed concurrently, retry")
	ErrTemplateNotFound       = errors.New("template not found")
	ErrDeviceBusy             = errors.New("device has an active order, pricing cannot change")
)
