package rental

import (
	"encoding/hex"
	"strconv"

	"rentledger/core/types"
)

const (
	EventTypeRented            = "rental.rented"
	EventTypeCarReturned       = "rental.car_returned"
	EventTypePayout            = "rental.payout"
	EventTypeAdminPayout       = "rental.admin_payout"
	EventTypeCarAdded          = "rental.car_added"
	EventTypeCarRemoved        = "rental.car_removed"
	EventTypeCommissionUpdated = "rental.commission_updated"
)

// NewRentedEvent returns the canonical event payload emitted when a rental is
// opened.
func NewRentedEvent(r *Rental) *types.Event {
	attrs := make(map[string]string)
	if r == nil {
		return &types.Event{Type: EventTypeRented, Attributes: attrs}
	}
	sanitized, err := SanitizeRental(r)
	if err != nil {
		return &types.Event{Type: EventTypeRented, Attributes: attrs}
	}
	attrs["renter"] = hex.EncodeToString(sanitized.Renter[:])
	attrs["owner"] = hex.EncodeToString(sanitized.Owner[:])
	attrs["totalDays"] = strconv.FormatUint(uint64(sanitized.TotalDays), 10)
	attrs["amount"] = sanitized.Amount.String()
	return &types.Event{Type: EventTypeRented, Attributes: attrs}
}

// NewCarReturnedEvent returns the canonical event payload emitted when the
// renter hands the car back.
func NewCarReturnedEvent(renter, owner [20]byte) *types.Event {
	return &types.Event{Type: EventTypeCarReturned, Attributes: map[string]string{
		"renter": hex.EncodeToString(renter[:]),
		"owner":  hex.EncodeToString(owner[:]),
	}}
}

// NewPayoutEvent returns the canonical event payload for an owner escrow
// withdrawal.
func NewPayoutEvent(owner [20]byte, amount string) *types.Event {
	return &types.Event{Type: EventTypePayout, Attributes: map[string]string{
		"owner":  hex.EncodeToString(owner[:]),
		"amount": amount,
	}}
}

// NewAdminPayoutEvent returns the canonical event payload for an admin
// commission withdrawal.
func NewAdminPayoutEvent(admin [20]byte, amount string) *types.Event {
	return &types.Event{Type: EventTypeAdminPayout, Attributes: map[string]string{
		"admin":  hex.EncodeToString(admin[:]),
		"amount": amount,
	}}
}

// NewCarAddedEvent returns the canonical event payload for a new listing.
func NewCarAddedEvent(c *Car) *types.Event {
	attrs := make(map[string]string)
	if c == nil {
		return &types.Event{Type: EventTypeCarAdded, Attributes: attrs}
	}
	sanitized, err := SanitizeCar(c)
	if err != nil {
		return &types.Event{Type: EventTypeCarAdded, Attributes: attrs}
	}
	attrs["owner"] = hex.EncodeToString(sanitized.Owner[:])
	attrs["pricePerDay"] = sanitized.PricePerDay.String()
	return &types.Event{Type: EventTypeCarAdded, Attributes: attrs}
}

// NewCarRemovedEvent returns the canonical event payload for a delisting.
func NewCarRemovedEvent(owner [20]byte) *types.Event {
	return &types.Event{Type: EventTypeCarRemoved, Attributes: map[string]string{
		"owner": hex.EncodeToString(owner[:]),
	}}
}

// NewCommissionUpdatedEvent returns the canonical event payload emitted when
// the admin changes the flat commission.
func NewCommissionUpdatedEvent(commission string) *types.Event {
	return &types.Event{Type: EventTypeCommissionUpdated, Attributes: map[string]string{
		"commission": commission,
	}}
}
