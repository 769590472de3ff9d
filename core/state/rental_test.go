package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"rentledger/core/types"
	"rentledger/native/rental"
	"rentledger/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(storage.NewMemDB())
}

func addr(fill byte) [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = fill
	}
	return a
}

func TestAdminRoundTrip(t *testing.T) {
	m := newTestManager(t)
	_, ok, err := m.AdminGet()
	require.NoError(t, err)
	require.False(t, ok)

	admin := &rental.Admin{Address: addr(0x01), Commission: big.NewInt(500), AvailableToWithdraw: big.NewInt(1200)}
	require.NoError(t, m.AdminPut(admin))

	loaded, ok, err := m.AdminGet()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, admin.Address, loaded.Address)
	require.Zero(t, loaded.Commission.Cmp(big.NewInt(500)))
	require.Zero(t, loaded.AvailableToWithdraw.Cmp(big.NewInt(1200)))
}

func TestCarRoundTripAndDelete(t *testing.T) {
	m := newTestManager(t)
	owner := addr(0x02)
	_, ok, err := m.CarGet(owner)
	require.NoError(t, err)
	require.False(t, ok)

	car := &rental.Car{Owner: owner, PricePerDay: big.NewInt(1500), Status: rental.CarRented, AvailableToWithdraw: big.NewInt(4500)}
	require.NoError(t, m.CarPut(car))

	loaded, ok, err := m.CarGet(owner)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rental.CarRented, loaded.Status)
	require.Zero(t, loaded.AvailableToWithdraw.Cmp(big.NewInt(4500)))

	require.NoError(t, m.CarDelete(owner))
	_, ok, err = m.CarGet(owner)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCarPutRejectsInvalid(t *testing.T) {
	m := newTestManager(t)
	err := m.CarPut(&rental.Car{Owner: addr(0x03), PricePerDay: big.NewInt(0)})
	require.Error(t, err)
}

func TestRentalRoundTripIsPairKeyed(t *testing.T) {
	m := newTestManager(t)
	renter := addr(0x04)
	owner := addr(0x05)
	rec := &rental.Rental{Renter: renter, Owner: owner, TotalDays: 3, Amount: big.NewInt(4500)}
	require.NoError(t, m.RentalPut(rec))

	loaded, ok, err := m.RentalGet(renter, owner)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(3), loaded.TotalDays)

	// The reversed pair is a different key.
	_, ok, err = m.RentalGet(owner, renter)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.RentalDelete(renter, owner))
	_, ok, err = m.RentalGet(renter, owner)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContractBalanceDefaultsToZero(t *testing.T) {
	m := newTestManager(t)
	balance, err := m.ContractBalanceGet()
	require.NoError(t, err)
	require.Zero(t, balance.Sign())

	require.NoError(t, m.ContractBalancePut(big.NewInt(9000)))
	balance, err = m.ContractBalanceGet()
	require.NoError(t, err)
	require.Zero(t, balance.Cmp(big.NewInt(9000)))
}

func TestAccountDefaultsToZeroBalance(t *testing.T) {
	m := newTestManager(t)
	acc, err := m.GetAccount(addr(0x06))
	require.NoError(t, err)
	require.NotNil(t, acc.Balance)
	require.Zero(t, acc.Balance.Sign())

	acc.Balance = big.NewInt(777)
	require.NoError(t, m.PutAccount(addr(0x06), acc))
	loaded, err := m.GetAccount(addr(0x06))
	require.NoError(t, err)
	require.Zero(t, loaded.Balance.Cmp(big.NewInt(777)))
}

func TestAccountPutNilNormalizes(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.PutAccount(addr(0x07), &types.Account{}))
	loaded, err := m.GetAccount(addr(0x07))
	require.NoError(t, err)
	require.NotNil(t, loaded.Balance)
}
