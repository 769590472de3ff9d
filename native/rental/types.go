package rental

import (
	"fmt"
	"math/big"
)

// CarStatus represents the lifecycle states of a listed car.
type CarStatus uint8

const (
	CarAvailable CarStatus = iota
	CarRented
)

// Valid reports whether the status value is within the supported range.
func (s CarStatus) Valid() bool {
	switch s {
	case CarAvailable, CarRented:
		return true
	default:
		return false
	}
}

func (s CarStatus) String() string {
	switch s {
	case CarAvailable:
		return "available"
	case CarRented:
		return "rented"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Admin is the singleton platform administrator record. Commission is a flat
// fee charged per rental on top of the deposit; AvailableToWithdraw is the
// accrued commission escrow.
type Admin struct {
	Address             [20]byte
	Commission          *big.Int
	AvailableToWithdraw *big.Int
}

// Clone returns a deep copy of the admin record.
func (a *Admin) Clone() *Admin {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Commission = cloneBigInt(a.Commission)
	clone.AvailableToWithdraw = cloneBigInt(a.AvailableToWithdraw)
	return &clone
}

// Car is a listing keyed by its owner. AvailableToWithdraw is the owner's
// accrued escrow; it is credited at rental time and only becomes payable once
// the car is back to CarAvailable.
type Car struct {
	Owner               [20]byte
	PricePerDay         *big.Int
	Status              CarStatus
	AvailableToWithdraw *big.Int
}

// Clone returns a deep copy of the car so callers can safely mutate the copy
// without affecting the stored instance.
func (c *Car) Clone() *Car {
	if c == nil {
		return nil
	}
	clone := *c
	clone.PricePerDay = cloneBigInt(c.PricePerDay)
	clone.AvailableToWithdraw = cloneBigInt(c.AvailableToWithdraw)
	return &clone
}

// Rental records that a specific renter currently occupies a specific owner's
// car. Amount is the owner's share of the deposit, excluding commission.
type Rental struct {
	Renter    [20]byte
	Owner     [20]byte
	TotalDays uint32
	Amount    *big.Int
}

// Clone returns a deep copy of the rental record.
func (r *Rental) Clone() *Rental {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Amount = cloneBigInt(r.Amount)
	return &clone
}

// SanitizeCar validates and normalises the supplied car record, returning a
// cloned instance with non-nil balance fields. The function does not mutate
// the original value.
func SanitizeCar(c *Car) (*Car, error) {
	if c == nil {
		return nil, fmt.Errorf("rental: nil car")
	}
	clone := c.Clone()
	if clone.PricePerDay == nil || clone.PricePerDay.Sign() <= 0 {
		return nil, fmt.Errorf("rental: car price must be positive")
	}
	if clone.AvailableToWithdraw == nil {
		clone.AvailableToWithdraw = big.NewInt(0)
	}
	if clone.AvailableToWithdraw.Sign() < 0 {
		return nil, fmt.Errorf("rental: car escrow must be non-negative")
	}
	if !clone.Status.Valid() {
		return nil, fmt.Errorf("rental: invalid car status: %d", clone.Status)
	}
	return clone, nil
}

// SanitizeAdmin validates and normalises the supplied admin record.
func SanitizeAdmin(a *Admin) (*Admin, error) {
	if a == nil {
		return nil, fmt.Errorf("rental: nil admin")
	}
	clone := a.Clone()
	if clone.Commission == nil {
		clone.Commission = big.NewInt(0)
	}
	if clone.Commission.Sign() < 0 {
		return nil, fmt.Errorf("rental: commission must be non-negative")
	}
	if clone.AvailableToWithdraw == nil {
		clone.AvailableToWithdraw = big.NewInt(0)
	}
	if clone.AvailableToWithdraw.Sign() < 0 {
		return nil, fmt.Errorf("rental: admin escrow must be non-negative")
	}
	return clone, nil
}

// SanitizeRental validates and normalises the supplied rental record.
func SanitizeRental(r *Rental) (*Rental, error) {
	if r == nil {
		return nil, fmt.Errorf("rental: nil rental")
	}
	clone := r.Clone()
	if clone.Renter == clone.Owner {
		return nil, fmt.Errorf("rental: renter and owner must differ")
	}
	if clone.TotalDays == 0 {
		return nil, fmt.Errorf("rental: total days must be positive")
	}
	if clone.Amount == nil || clone.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("rental: amount must be positive")
	}
	return clone, nil
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
