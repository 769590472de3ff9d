package rental

import (
	"errors"
	"fmt"
	"math/big"

	"rentledger/core/events"
	"rentledger/core/types"
	"rentledger/observability/metrics"
)

var (
	errNilState      = errors.New("rental engine: state not configured")
	errNilAuthorizer = errors.New("rental engine: authorizer not configured")
	errNilVault      = errors.New("rental engine: vault address not configured")
)

// Actions passed to the authorizer so an oracle can scope approvals per
// operation.
const (
	ActionAddCar             = "add_car"
	ActionRemoveCar          = "remove_car"
	ActionRent               = "rental"
	ActionReturnCar          = "return_car"
	ActionPayoutOwner        = "payout_owner"
	ActionSetCommission      = "set_commission"
	ActionWithdrawCommission = "withdraw_admin_commission"
)

// Authorizer verifies that a claimed principal approved the current
// operation. The engine calls it before the first state mutation so a
// rejected caller leaves no partial effect.
type Authorizer interface {
	Authorize(principal [20]byte, action string) error
}

// AuthorizerFunc adapts a plain function to the Authorizer interface.
type AuthorizerFunc func(principal [20]byte, action string) error

// Authorize implements the Authorizer interface.
func (f AuthorizerFunc) Authorize(principal [20]byte, action string) error {
	return f(principal, action)
}

type engineState interface {
	AdminGet() (*Admin, bool, error)
	AdminPut(*Admin) error
	CarGet(owner [20]byte) (*Car, bool, error)
	CarPut(*Car) error
	CarDelete(owner [20]byte) error
	RentalGet(renter, owner [20]byte) (*Rental, bool, error)
	RentalPut(*Rental) error
	RentalDelete(renter, owner [20]byte) error
	ContractBalanceGet() (*big.Int, error)
	ContractBalancePut(*big.Int) error
	GetAccount(addr [20]byte) (*types.Account, error)
	PutAccount(addr [20]byte, acc *types.Account) error
}

type rentalEvent struct {
	evt *types.Event
}

func (e rentalEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e rentalEvent) Event() *types.Event { return e.evt }

// Engine wires the car-rental escrow rules with external state, authorization
// and event emission. Every public operation runs to completion against the
// ledger: preconditions and the external funds transfer come first, typed
// state writes only after, so a failed transfer leaves the ledger unchanged.
type Engine struct {
	state   engineState
	auth    Authorizer
	emitter events.Emitter
	metrics *metrics.Rental
	vault   [20]byte
}

// NewEngine creates a rental engine with a no-op emitter. Callers can override
// the emitter via SetEmitter.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetAuthorizer configures the authorization oracle consulted before every
// mutation.
func (e *Engine) SetAuthorizer(auth Authorizer) { e.auth = auth }

// SetVault configures the account that models contract custody. Rental
// deposits are pulled into it and withdrawals are pushed out of it.
func (e *Engine) SetVault(addr [20]byte) { e.vault = addr }

// SetMetrics configures the metrics sink. Passing nil disables recording.
func (e *Engine) SetMetrics(m *metrics.Rental) { e.metrics = m }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(rentalEvent{evt: event})
}

func (e *Engine) authorize(principal [20]byte, action string) error {
	if e == nil || e.auth == nil {
		return errNilAuthorizer
	}
	if err := e.auth.Authorize(principal, action); err != nil {
		return fmt.Errorf("%w: %s", ErrUnauthorized, action)
	}
	return nil
}

func (e *Engine) ensureVaultConfigured() error {
	if e == nil {
		return errNilVault
	}
	if e.vault == ([20]byte{}) {
		return errNilVault
	}
	return nil
}

func (e *Engine) loadAdmin() (*Admin, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	admin, ok, err := e.state.AdminGet()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return admin, nil
}

// transfer moves a balance between principal accounts. The amount must be
// non-negative; a shortfall on the source account fails with
// ErrInsufficientFunds and writes nothing.
func (e *Engine) transfer(from, to [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	amt := cloneBigInt(amount)
	if amt.Sign() == 0 {
		return nil
	}
	if amt.Sign() < 0 {
		return fmt.Errorf("rental: negative transfer amount")
	}
	fromAcc, err := e.state.GetAccount(from)
	if err != nil {
		return err
	}
	toAcc, err := e.state.GetAccount(to)
	if err != nil {
		return err
	}
	fromAcc = types.EnsureBalances(fromAcc)
	toAcc = types.EnsureBalances(toAcc)
	if fromAcc.Balance.Cmp(amt) < 0 {
		return ErrInsufficientFunds
	}
	fromAcc.Balance = new(big.Int).Sub(fromAcc.Balance, amt)
	toAcc.Balance = new(big.Int).Add(toAcc.Balance, amt)
	if err := e.state.PutAccount(from, fromAcc); err != nil {
		return err
	}
	return e.state.PutAccount(to, toAcc)
}

func subChecked(a, b *big.Int, short error) (*big.Int, error) {
	res := new(big.Int).Sub(a, b)
	if res.Sign() < 0 {
		return nil, short
	}
	return res, nil
}

// Initialize records the platform administrator. It may run exactly once per
// ledger; the commission starts at zero.
func (e *Engine) Initialize(admin [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	_, ok, err := e.state.AdminGet()
	if err != nil {
		return err
	}
	if ok {
		return ErrAlreadyInitialized
	}
	record := &Admin{
		Address:             admin,
		Commission:          big.NewInt(0),
		AvailableToWithdraw: big.NewInt(0),
	}
	if err := e.state.AdminPut(record); err != nil {
		return err
	}
	return e.state.ContractBalancePut(big.NewInt(0))
}

// AddCar lists a car for the owner. One listing per owner at a time.
func (e *Engine) AddCar(owner [20]byte, pricePerDay *big.Int) (*Car, error) {
	if _, err := e.loadAdmin(); err != nil {
		return nil, err
	}
	if err := e.authorize(owner, ActionAddCar); err != nil {
		return nil, err
	}
	if pricePerDay == nil || pricePerDay.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	_, ok, err := e.state.CarGet(owner)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrCarAlreadyExists
	}
	car := &Car{
		Owner:               owner,
		PricePerDay:         cloneBigInt(pricePerDay),
		Status:              CarAvailable,
		AvailableToWithdraw: big.NewInt(0),
	}
	if err := e.state.CarPut(car); err != nil {
		return nil, err
	}
	e.emit(NewCarAddedEvent(car))
	e.metrics.ObserveCarAdded()
	return car.Clone(), nil
}

// RemoveCar delists the owner's car. Removal is refused while the car is
// rented or while escrow remains unwithdrawn, so no funds are stranded.
func (e *Engine) RemoveCar(owner [20]byte) error {
	if _, err := e.loadAdmin(); err != nil {
		return err
	}
	if err := e.authorize(owner, ActionRemoveCar); err != nil {
		return err
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCarNotFound
	}
	if car.Status == CarRented {
		return ErrCarStillRented
	}
	if car.AvailableToWithdraw != nil && car.AvailableToWithdraw.Sign() > 0 {
		return ErrEscrowNotEmpty
	}
	if err := e.state.CarDelete(owner); err != nil {
		return err
	}
	e.emit(NewCarRemovedEvent(owner))
	return nil
}

// CarStatusOf reports the listing status for the owner. Pure read, no
// authorization required.
func (e *Engine) CarStatusOf(owner [20]byte) (CarStatus, error) {
	if e == nil || e.state == nil {
		return 0, errNilState
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrCarNotFound
	}
	return car.Status, nil
}

// CarOf returns a copy of the owner's listing, if any.
func (e *Engine) CarOf(owner [20]byte) (*Car, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil || !ok {
		return nil, false, err
	}
	return car.Clone(), true, nil
}

// RentalOf returns a copy of the active rental record for the pair, if any.
func (e *Engine) RentalOf(renter, owner [20]byte) (*Rental, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	rec, ok, err := e.state.RentalGet(renter, owner)
	if err != nil || !ok {
		return nil, false, err
	}
	return rec.Clone(), true, nil
}

// Rent opens a rental: the deposit plus the flat commission is pulled from the
// renter into the vault first, and only on success are the escrow credits,
// the status flip and the rental record committed. A failed pull leaves the
// ledger unchanged.
func (e *Engine) Rent(renter, owner [20]byte, totalDays uint32, amount *big.Int) (*Rental, error) {
	admin, err := e.loadAdmin()
	if err != nil {
		return nil, err
	}
	if err := e.authorize(renter, ActionRent); err != nil {
		return nil, err
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCarNotFound
	}
	if car.Status == CarRented {
		return nil, ErrCarAlreadyRented
	}
	if renter == owner {
		return nil, ErrSelfRental
	}
	if totalDays == 0 {
		return nil, ErrInvalidDuration
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := e.ensureVaultConfigured(); err != nil {
		return nil, err
	}
	commission := cloneBigInt(admin.Commission)
	total := new(big.Int).Add(amount, commission)
	if err := e.transfer(renter, e.vault, total); err != nil {
		return nil, err
	}
	car.AvailableToWithdraw = new(big.Int).Add(car.AvailableToWithdraw, amount)
	car.Status = CarRented
	admin.AvailableToWithdraw = new(big.Int).Add(admin.AvailableToWithdraw, commission)
	rec := &Rental{
		Renter:    renter,
		Owner:     owner,
		TotalDays: totalDays,
		Amount:    cloneBigInt(amount),
	}
	balance, err := e.state.ContractBalanceGet()
	if err != nil {
		return nil, err
	}
	if err := e.state.CarPut(car); err != nil {
		return nil, err
	}
	if err := e.state.AdminPut(admin); err != nil {
		return nil, err
	}
	if err := e.state.RentalPut(rec); err != nil {
		return nil, err
	}
	if err := e.state.ContractBalancePut(new(big.Int).Add(balance, total)); err != nil {
		return nil, err
	}
	e.emit(NewRentedEvent(rec))
	e.metrics.ObserveRental(total)
	return rec.Clone(), nil
}

// ReturnCar closes the rental. No funds move; returning only flips the car
// back to available, which is what unlocks the owner's already-credited
// escrow for withdrawal.
func (e *Engine) ReturnCar(renter, owner [20]byte) error {
	if _, err := e.loadAdmin(); err != nil {
		return err
	}
	if err := e.authorize(renter, ActionReturnCar); err != nil {
		return err
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCarNotFound
	}
	if car.Status != CarRented {
		return ErrRentalNotFound
	}
	if _, ok, err = e.state.RentalGet(renter, owner); err != nil {
		return err
	} else if !ok {
		return ErrRentalNotFound
	}
	if renter == owner {
		return ErrSelfReturn
	}
	car.Status = CarAvailable
	if err := e.state.CarPut(car); err != nil {
		return err
	}
	if err := e.state.RentalDelete(renter, owner); err != nil {
		return err
	}
	e.emit(NewCarReturnedEvent(renter, owner))
	e.metrics.ObserveReturn()
	return nil
}

// PayoutOwner drains part or all of the owner's matured escrow. The push to
// the owner happens before the escrow debit so a failed push cannot burn
// funds; a rented car cannot be drained at all.
func (e *Engine) PayoutOwner(owner [20]byte, amount *big.Int) error {
	if _, err := e.loadAdmin(); err != nil {
		return err
	}
	if err := e.authorize(owner, ActionPayoutOwner); err != nil {
		return err
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCarNotFound
	}
	if car.Status == CarRented {
		return ErrCarStillRented
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.Cmp(car.AvailableToWithdraw) > 0 {
		return ErrInsufficientEscrow
	}
	if err := e.ensureVaultConfigured(); err != nil {
		return err
	}
	if err := e.transfer(e.vault, owner, amount); err != nil {
		return err
	}
	car.AvailableToWithdraw = new(big.Int).Sub(car.AvailableToWithdraw, amount)
	balance, err := e.state.ContractBalanceGet()
	if err != nil {
		return err
	}
	remaining, err := subChecked(balance, amount, fmt.Errorf("rental: contract balance underflow"))
	if err != nil {
		return err
	}
	if err := e.state.CarPut(car); err != nil {
		return err
	}
	if err := e.state.ContractBalancePut(remaining); err != nil {
		return err
	}
	e.emit(NewPayoutEvent(owner, amount.String()))
	e.metrics.ObservePayout("owner", amount)
	return nil
}

// WithdrawCommission drains part or all of the admin's accrued commission.
func (e *Engine) WithdrawCommission(amount *big.Int) error {
	admin, err := e.loadAdmin()
	if err != nil {
		return err
	}
	if err := e.authorize(admin.Address, ActionWithdrawCommission); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.Cmp(admin.AvailableToWithdraw) > 0 {
		return ErrInsufficientEscrow
	}
	if err := e.ensureVaultConfigured(); err != nil {
		return err
	}
	if err := e.transfer(e.vault, admin.Address, amount); err != nil {
		return err
	}
	admin.AvailableToWithdraw = new(big.Int).Sub(admin.AvailableToWithdraw, amount)
	balance, err := e.state.ContractBalanceGet()
	if err != nil {
		return err
	}
	remaining, err := subChecked(balance, amount, fmt.Errorf("rental: contract balance underflow"))
	if err != nil {
		return err
	}
	if err := e.state.AdminPut(admin); err != nil {
		return err
	}
	if err := e.state.ContractBalancePut(remaining); err != nil {
		return err
	}
	e.emit(NewAdminPayoutEvent(admin.Address, amount.String()))
	e.metrics.ObservePayout("admin", amount)
	return nil
}

// SetCommission overwrites the flat per-rental commission. Only future
// rentals are affected; settled rental records never change.
func (e *Engine) SetCommission(commission *big.Int) error {
	admin, err := e.loadAdmin()
	if err != nil {
		return err
	}
	if err := e.authorize(admin.Address, ActionSetCommission); err != nil {
		return err
	}
	if commission == nil || commission.Sign() < 0 {
		return ErrInvalidCommission
	}
	admin.Commission = cloneBigInt(commission)
	if err := e.state.AdminPut(admin); err != nil {
		return err
	}
	e.emit(NewCommissionUpdatedEvent(admin.Commission.String()))
	return nil
}

// OwnerAvailableToWithdraw reports the escrow the owner may claim right now.
// Absent listings and rented cars both report zero; absence is normal for a
// query, not an error.
func (e *Engine) OwnerAvailableToWithdraw(owner [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	car, ok, err := e.state.CarGet(owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	if car.Status != CarAvailable {
		return big.NewInt(0), nil
	}
	return cloneBigInt(car.AvailableToWithdraw), nil
}

// AdminAvailableToWithdraw reports the accrued commission escrow, zero before
// initialization or before any commission has accrued.
func (e *Engine) AdminAvailableToWithdraw() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	admin, ok, err := e.state.AdminGet()
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return cloneBigInt(admin.AvailableToWithdraw), nil
}

// ContractBalance reports the total funds the ledger custodies.
func (e *Engine) ContractBalance() (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	balance, err := e.state.ContractBalanceGet()
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return big.NewInt(0), nil
	}
	return cloneBigInt(balance), nil
}
