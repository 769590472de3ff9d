package types

import "math/big"

// Account is the balance record kept per principal. The rental engine moves
// funds between renter, owner and the vault account that models contract
// custody.
type Account struct {
	Nonce   uint64   `json:"nonce"`
	Balance *big.Int `json:"balance"`
}

// EnsureBalances returns the account with a non-nil balance so callers can do
// arithmetic without nil checks. A nil account yields a fresh zero-balance one.
func EnsureBalances(acc *Account) *Account {
	if acc == nil {
		return &Account{Balance: big.NewInt(0)}
	}
	if acc.Balance == nil {
		acc.Balance = big.NewInt(0)
	}
	return acc
}
