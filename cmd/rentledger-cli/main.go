package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"

	"rentledger/config"
	"rentledger/core/events"
	"rentledger/core/state"
	"rentledger/core/types"
	"rentledger/native/rental"
	"rentledger/observability/logging"
	"rentledger/observability/metrics"
	"rentledger/storage"
)

var configPath = "./rentledger.toml"

// logEmitter forwards engine events to the structured logger.
type logEmitter struct {
	log *slog.Logger
}

type eventCarrier interface {
	Event() *types.Event
}

func (l logEmitter) Emit(evt events.Event) {
	carrier, ok := evt.(eventCarrier)
	if !ok || carrier.Event() == nil {
		return
	}
	e := carrier.Event()
	attrs := make([]any, 0, len(e.Attributes)*2)
	for k, v := range e.Attributes {
		attrs = append(attrs, slog.String(k, v))
	}
	l.log.Info(e.Type, attrs...)
}

func main() {
	args := os.Args[1:]
	for len(args) >= 2 && args[0] == "--config" {
		configPath = args[1]
		args = args[2:]
	}
	if len(args) < 1 {
		printUsage()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup("rentledger-cli", cfg.Environment, cfg.LogFile)

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open ledger database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	manager := state.NewManager(db)
	engine := rental.NewEngine()
	engine.SetState(manager)
	engine.SetEmitter(logEmitter{log: logger})
	engine.SetMetrics(metrics.RentalLedger())
	// The CLI operator holds every key locally, so approval is implicit.
	// Wallet-level verification belongs to an external oracle.
	engine.SetAuthorizer(rental.AuthorizerFunc(func([20]byte, string) error { return nil }))
	if vault, err := cfg.Vault(); err == nil {
		engine.SetVault(vault)
	}

	if err := run(engine, manager, cfg, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(engine *rental.Engine, manager *state.Manager, cfg *config.Config, args []string) error {
	command := args[0]
	args = args[1:]
	switch command {
	case "init":
		admin, err := cfg.Admin()
		if err != nil {
			return err
		}
		if err := engine.Initialize(admin); err != nil {
			return err
		}
		commission, err := cfg.Commission()
		if err != nil {
			return err
		}
		if commission.Sign() > 0 {
			if err := engine.SetCommission(commission); err != nil {
				return err
			}
		}
		fmt.Println("ledger initialized")
		return nil
	case "fund":
		addr, amount, err := addrAmountArgs(args)
		if err != nil {
			return err
		}
		acc, err := manager.GetAccount(addr)
		if err != nil {
			return err
		}
		acc.Balance = new(big.Int).Add(acc.Balance, amount)
		if err := manager.PutAccount(addr, acc); err != nil {
			return err
		}
		fmt.Printf("balance: %s\n", acc.Balance)
		return nil
	case "balance":
		addr, err := addrArg(args)
		if err != nil {
			return err
		}
		acc, err := manager.GetAccount(addr)
		if err != nil {
			return err
		}
		fmt.Println(acc.Balance)
		return nil
	case "add-car":
		addr, price, err := addrAmountArgs(args)
		if err != nil {
			return err
		}
		if _, err := engine.AddCar(addr, price); err != nil {
			return err
		}
		fmt.Println("car listed")
		return nil
	case "remove-car":
		addr, err := addrArg(args)
		if err != nil {
			return err
		}
		if err := engine.RemoveCar(addr); err != nil {
			return err
		}
		fmt.Println("car removed")
		return nil
	case "car-status":
		addr, err := addrArg(args)
		if err != nil {
			return err
		}
		status, err := engine.CarStatusOf(addr)
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	case "rent":
		if len(args) != 4 {
			return fmt.Errorf("usage: rent <renter> <owner> <days> <amount>")
		}
		renter, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		days, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid day count %q", args[2])
		}
		amount, err := parseAmount(args[3])
		if err != nil {
			return err
		}
		if _, err := engine.Rent(renter, owner, uint32(days), amount); err != nil {
			return err
		}
		fmt.Println("rental opened")
		return nil
	case "return":
		if len(args) != 2 {
			return fmt.Errorf("usage: return <renter> <owner>")
		}
		renter, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		if err := engine.ReturnCar(renter, owner); err != nil {
			return err
		}
		fmt.Println("car returned")
		return nil
	case "payout":
		addr, amount, err := addrAmountArgs(args)
		if err != nil {
			return err
		}
		if err := engine.PayoutOwner(addr, amount); err != nil {
			return err
		}
		fmt.Println("payout complete")
		return nil
	case "set-commission":
		amount, err := amountArg(args)
		if err != nil {
			return err
		}
		if err := engine.SetCommission(amount); err != nil {
			return err
		}
		fmt.Println("commission updated")
		return nil
	case "withdraw-commission":
		amount, err := amountArg(args)
		if err != nil {
			return err
		}
		if err := engine.WithdrawCommission(amount); err != nil {
			return err
		}
		fmt.Println("commission withdrawn")
		return nil
	case "owner-available":
		addr, err := addrArg(args)
		if err != nil {
			return err
		}
		available, err := engine.OwnerAvailableToWithdraw(addr)
		if err != nil {
			return err
		}
		fmt.Println(available)
		return nil
	case "admin-available":
		available, err := engine.AdminAvailableToWithdraw()
		if err != nil {
			return err
		}
		fmt.Println(available)
		return nil
	case "contract-balance":
		balance, err := engine.ContractBalance()
		if err != nil {
			return err
		}
		fmt.Println(balance)
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func addrArg(args []string) ([20]byte, error) {
	if len(args) != 1 {
		return [20]byte{}, fmt.Errorf("expected a single address argument")
	}
	return parseAddress(args[0])
}

func amountArg(args []string) (*big.Int, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected a single amount argument")
	}
	return parseAmount(args[0])
}

func addrAmountArgs(args []string) ([20]byte, *big.Int, error) {
	if len(args) != 2 {
		return [20]byte{}, nil, fmt.Errorf("expected <address> <amount> arguments")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return [20]byte{}, nil, err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return [20]byte{}, nil, err
	}
	return addr, amount, nil
}

func parseAddress(raw string) ([20]byte, error) {
	var addr [20]byte
	decoded, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil || len(decoded) != len(addr) {
		return addr, fmt.Errorf("invalid address %q: want 20 hex-encoded bytes", raw)
	}
	copy(addr[:], decoded)
	return addr, nil
}

func parseAmount(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

func printUsage() {
	fmt.Println(`Usage: rentledger-cli [--config <path>] <command> [args]

Commands:
  init                                  initialize the ledger with the configured admin
  fund <addr> <amount>                  credit a principal's account balance
  balance <addr>                        show a principal's account balance
  add-car <owner> <price-per-day>       list a car
  remove-car <owner>                    delist a car
  car-status <owner>                    show listing status
  rent <renter> <owner> <days> <amount> open a rental
  return <renter> <owner>               return a rented car
  payout <owner> <amount>               withdraw matured owner escrow
  set-commission <amount>               set the flat per-rental commission
  withdraw-commission <amount>          withdraw accrued admin commission
  owner-available <owner>               owner escrow available to withdraw
  admin-available                       admin escrow available to withdraw
  contract-balance                      total funds in custody`)
}
