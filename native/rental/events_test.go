package rental

import (
	"encoding/hex"
	"math/big"
	"testing"
)

func TestNewRentedEventAttributes(t *testing.T) {
	rec := &Rental{
		Renter:    newTestAddress(0x11),
		Owner:     newTestAddress(0x22),
		TotalDays: 7,
		Amount:    big.NewInt(10_500),
	}
	evt := NewRentedEvent(rec)
	if evt.Type != EventTypeRented {
		t.Fatalf("type = %s, want %s", evt.Type, EventTypeRented)
	}
	if got := evt.Attributes["renter"]; got != hex.EncodeToString(rec.Renter[:]) {
		t.Fatalf("renter attr = %s", got)
	}
	if got := evt.Attributes["owner"]; got != hex.EncodeToString(rec.Owner[:]) {
		t.Fatalf("owner attr = %s", got)
	}
	if evt.Attributes["totalDays"] != "7" || evt.Attributes["amount"] != "10500" {
		t.Fatalf("unexpected payload: %v", evt.Attributes)
	}
}

func TestNewRentedEventNilAndInvalid(t *testing.T) {
	evt := NewRentedEvent(nil)
	if evt.Type != EventTypeRented || len(evt.Attributes) != 0 {
		t.Fatalf("nil rental should yield empty payload: %+v", evt)
	}
	same := newTestAddress(0x33)
	evt = NewRentedEvent(&Rental{Renter: same, Owner: same, TotalDays: 1, Amount: big.NewInt(1)})
	if len(evt.Attributes) != 0 {
		t.Fatalf("invalid rental should yield empty payload: %+v", evt)
	}
}

func TestPayoutEvents(t *testing.T) {
	owner := newTestAddress(0x44)
	evt := NewPayoutEvent(owner, "2500")
	if evt.Type != EventTypePayout || evt.Attributes["amount"] != "2500" {
		t.Fatalf("unexpected payout event: %+v", evt)
	}
	if evt.Attributes["owner"] != hex.EncodeToString(owner[:]) {
		t.Fatalf("owner attr = %s", evt.Attributes["owner"])
	}
	admin := newTestAddress(0x55)
	evt = NewAdminPayoutEvent(admin, "300")
	if evt.Type != EventTypeAdminPayout || evt.Attributes["admin"] != hex.EncodeToString(admin[:]) {
		t.Fatalf("unexpected admin payout event: %+v", evt)
	}
}

func TestCarReturnedEvent(t *testing.T) {
	renter := newTestAddress(0x66)
	owner := newTestAddress(0x77)
	evt := NewCarReturnedEvent(renter, owner)
	if evt.Type != EventTypeCarReturned {
		t.Fatalf("type = %s", evt.Type)
	}
	if evt.Attributes["renter"] != hex.EncodeToString(renter[:]) || evt.Attributes["owner"] != hex.EncodeToString(owner[:]) {
		t.Fatalf("unexpected payload: %v", evt.Attributes)
	}
}
