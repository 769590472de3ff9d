package state

import (
	"math/big"

	"rentledger/core/types"
	"rentledger/native/rental"
)

// AdminGet loads the singleton admin record.
func (m *Manager) AdminGet() (*rental.Admin, bool, error) {
	var stored rental.Admin
	ok, err := m.KVGet(rentalAdminKeyBytes, &stored)
	if err != nil || !ok {
		return nil, false, err
	}
	sanitized, err := rental.SanitizeAdmin(&stored)
	if err != nil {
		return nil, false, err
	}
	return sanitized, true, nil
}

// AdminPut persists the singleton admin record.
func (m *Manager) AdminPut(a *rental.Admin) error {
	sanitized, err := rental.SanitizeAdmin(a)
	if err != nil {
		return err
	}
	return m.KVPut(rentalAdminKeyBytes, sanitized)
}

// CarGet loads the listing keyed by owner.
func (m *Manager) CarGet(owner [20]byte) (*rental.Car, bool, error) {
	var stored rental.Car
	ok, err := m.KVGet(carKey(owner), &stored)
	if err != nil || !ok {
		return nil, false, err
	}
	sanitized, err := rental.SanitizeCar(&stored)
	if err != nil {
		return nil, false, err
	}
	return sanitized, true, nil
}

// CarPut persists a listing under its owner key.
func (m *Manager) CarPut(c *rental.Car) error {
	sanitized, err := rental.SanitizeCar(c)
	if err != nil {
		return err
	}
	return m.KVPut(carKey(sanitized.Owner), sanitized)
}

// CarDelete removes the listing keyed by owner.
func (m *Manager) CarDelete(owner [20]byte) error {
	return m.KVDelete(carKey(owner))
}

// RentalGet loads the rental record keyed by the (renter, owner) pair.
func (m *Manager) RentalGet(renter, owner [20]byte) (*rental.Rental, bool, error) {
	var stored rental.Rental
	ok, err := m.KVGet(rentalRecordKey(renter, owner), &stored)
	if err != nil || !ok {
		return nil, false, err
	}
	sanitized, err := rental.SanitizeRental(&stored)
	if err != nil {
		return nil, false, err
	}
	return sanitized, true, nil
}

// RentalPut persists a rental record under its pair key.
func (m *Manager) RentalPut(r *rental.Rental) error {
	sanitized, err := rental.SanitizeRental(r)
	if err != nil {
		return err
	}
	return m.KVPut(rentalRecordKey(sanitized.Renter, sanitized.Owner), sanitized)
}

// RentalDelete removes the rental record for the pair.
func (m *Manager) RentalDelete(renter, owner [20]byte) error {
	return m.KVDelete(rentalRecordKey(renter, owner))
}

// ContractBalanceGet loads the total funds custodied by the ledger.
func (m *Manager) ContractBalanceGet() (*big.Int, error) {
	balance := new(big.Int)
	ok, err := m.KVGet(rentalBalanceKeyBytes, balance)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return balance, nil
}

// ContractBalancePut persists the total custodied funds.
func (m *Manager) ContractBalancePut(balance *big.Int) error {
	if balance == nil {
		balance = big.NewInt(0)
	}
	return m.KVPut(rentalBalanceKeyBytes, balance)
}

// GetAccount loads the balance record for a principal. Absent principals
// yield a zero-balance account so callers can do arithmetic directly.
func (m *Manager) GetAccount(addr [20]byte) (*types.Account, error) {
	var stored types.Account
	ok, err := m.KVGet(accountKey(addr), &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.EnsureBalances(nil), nil
	}
	return types.EnsureBalances(&stored), nil
}

// PutAccount persists the balance record for a principal.
func (m *Manager) PutAccount(addr [20]byte, acc *types.Account) error {
	return m.KVPut(accountKey(addr), types.EnsureBalances(acc))
}
