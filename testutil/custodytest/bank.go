// Package custodytest provides an in-memory bank for exercising the ledger
// keepers without a full x/bank and x/auth stack.
package custodytest

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"botarena/internal/custody"
)

var _ custody.BankKeeper = (*BankKeeper)(nil)

// BankKeeper keeps balances in a map keyed by bech32 address. Module accounts
// are keyed by their derived module address, the same way x/auth derives them.
type BankKeeper struct {
	Balances map[string]sdk.Coins

	// OnTransfer, when set, runs after every successful transfer with the
	// context the keeper passed in. Tests use it to re-enter a keeper mid-call.
	OnTransfer func(ctx context.Context)
}

func NewBankKeeper() *BankKeeper {
	return &BankKeeper{Balances: make(map[string]sdk.Coins)}
}

// Fund mints coins straight into addr.
func (b *BankKeeper) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	b.Balances[addr.String()] = b.Balances[addr.String()].Add(coins...)
}

// FundModule mints coins straight into a module account, as an accidental
// transfer to the module address would.
func (b *BankKeeper) FundModule(moduleName string, coins ...sdk.Coin) {
	b.Fund(authtypes.NewModuleAddress(moduleName), coins...)
}

func (b *BankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (b *BankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// SendCoins moves amt between two accounts, failing without side effects when
// the sender cannot cover it.
func (b *BankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	balance := b.Balances[from.String()]
	if !balance.IsAllGTE(amt) {
		return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "%s is smaller than %s", balance, amt)
	}
	b.Balances[from.String()] = balance.Sub(amt...)
	b.Balances[to.String()] = b.Balances[to.String()].Add(amt...)
	if b.OnTransfer != nil {
		b.OnTransfer(ctx)
	}
	return nil
}

func (b *BankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.Balances[addr.String()].AmountOf(denom))
}

// ModuleBalance is a shortcut for the balance of a module account.
func (b *BankKeeper) ModuleBalance(moduleName, denom string) sdk.Coin {
	return b.GetBalance(context.Background(), authtypes.NewModuleAddress(moduleName), denom)
}
