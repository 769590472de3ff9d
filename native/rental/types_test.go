package rental

import (
	"math/big"
	"testing"
)

func TestSanitizeCar(t *testing.T) {
	owner := newTestAddress(0x01)
	car := &Car{Owner: owner, PricePerDay: big.NewInt(100), Status: CarAvailable}
	sanitized, err := SanitizeCar(car)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if sanitized.AvailableToWithdraw == nil || sanitized.AvailableToWithdraw.Sign() != 0 {
		t.Fatalf("escrow should default to zero")
	}
	if _, err := SanitizeCar(&Car{Owner: owner, PricePerDay: big.NewInt(0)}); err == nil {
		t.Fatalf("zero price must be rejected")
	}
	if _, err := SanitizeCar(&Car{Owner: owner, PricePerDay: big.NewInt(1), Status: CarStatus(9)}); err == nil {
		t.Fatalf("invalid status must be rejected")
	}
	if _, err := SanitizeCar(nil); err == nil {
		t.Fatalf("nil car must be rejected")
	}
}

func TestSanitizeRental(t *testing.T) {
	renter := newTestAddress(0x01)
	owner := newTestAddress(0x02)
	if _, err := SanitizeRental(&Rental{Renter: renter, Owner: renter, TotalDays: 1, Amount: big.NewInt(1)}); err == nil {
		t.Fatalf("self rental must be rejected")
	}
	if _, err := SanitizeRental(&Rental{Renter: renter, Owner: owner, TotalDays: 0, Amount: big.NewInt(1)}); err == nil {
		t.Fatalf("zero duration must be rejected")
	}
	if _, err := SanitizeRental(&Rental{Renter: renter, Owner: owner, TotalDays: 1, Amount: big.NewInt(0)}); err == nil {
		t.Fatalf("zero amount must be rejected")
	}
	rec, err := SanitizeRental(&Rental{Renter: renter, Owner: owner, TotalDays: 3, Amount: big.NewInt(450)})
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if rec.Amount.Cmp(big.NewInt(450)) != 0 {
		t.Fatalf("amount = %s", rec.Amount)
	}
}

func TestCloneIsDeep(t *testing.T) {
	car := &Car{Owner: newTestAddress(0x01), PricePerDay: big.NewInt(100), AvailableToWithdraw: big.NewInt(50)}
	clone := car.Clone()
	clone.AvailableToWithdraw.SetInt64(999)
	if car.AvailableToWithdraw.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("clone aliases the original escrow")
	}
	admin := &Admin{Address: newTestAddress(0x02), Commission: big.NewInt(5), AvailableToWithdraw: big.NewInt(7)}
	adminClone := admin.Clone()
	adminClone.Commission.SetInt64(100)
	if admin.Commission.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("clone aliases the original commission")
	}
}

func TestCarStatusString(t *testing.T) {
	if CarAvailable.String() != "available" || CarRented.String() != "rented" {
		t.Fatalf("unexpected status strings: %s %s", CarAvailable, CarRented)
	}
	if CarStatus(9).Valid() {
		t.Fatalf("status 9 must be invalid")
	}
}
