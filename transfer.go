package tokenledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/types"
)

// Transfer moves quantity from one account to another. It requires from's
// authority. The recipient row, when it has to be created, is paid for by to
// if the caller also holds to's authority, otherwise by from.
func (l *Ledger) Transfer(ctx context.Context, from, to types.Name, quantity types.Asset, memo string) error {
	return l.execute(ctx, receipt.ActionTransfer, func(tx *txn) error {
		return l.transfer(ctx, tx, l.auth, from, to, quantity, memo)
	})
}

func (l *Ledger) transfer(ctx context.Context, tx *txn, authz Authorizer, from, to types.Name, quantity types.Asset, memo string) error {
	if from == to {
		return ErrSelfTransfer
	}
	if err := requireAuth(ctx, authz, from); err != nil {
		return err
	}
	if err := l.requireAccount(ctx, to); err != nil {
		return err
	}

	st, err := tx.stat(ctx, quantity.Symbol.Code)
	if err != nil {
		return fmt.Errorf("%w: %s", err, quantity.Symbol.Code)
	}

	act := tx.begin(receipt.ActionTransfer, from)
	act.From = from
	act.To = to
	act.Quantity = quantity
	act.Memo = memo
	act.Notify(from)
	act.Notify(to)

	if err := checkQuantity(quantity); err != nil {
		return err
	}
	if err := checkSameSymbol(quantity, st.Symbol()); err != nil {
		return err
	}
	if err := checkMemo(memo); err != nil {
		return err
	}

	payer := from
	if authz.HasAuth(ctx, to) {
		payer = to
	}
	act.Payer = payer

	if err := l.subBalance(ctx, tx, from, quantity, from); err != nil {
		return err
	}
	return l.addBalance(ctx, tx, to, quantity, payer)
}

// subBalance debits value from owner's row, which must exist and cover it.
// The row's payer becomes payer.
func (l *Ledger) subBalance(ctx context.Context, tx *txn, owner types.Name, value types.Asset, payer types.Name) error {
	b, err := tx.balance(ctx, balance.Key{Owner: owner, Code: value.Symbol.Code})
	if err != nil {
		return fmt.Errorf("%w: %s", err, owner)
	}
	if b.Balance.Amount < value.Amount {
		return fmt.Errorf("%w: %s holds %s", ErrOverdrawnBalance, owner, b.Balance)
	}

	if b.Balance, err = b.Balance.Sub(value); err != nil {
		return arithmeticError(err)
	}
	b.Payer = payer
	tx.putBalance(b)
	return nil
}

// addBalance credits value to owner, creating the row paid by payer when it
// does not exist. An existing row keeps its payer.
func (l *Ledger) addBalance(ctx context.Context, tx *txn, owner types.Name, value types.Asset, payer types.Name) error {
	key := balance.Key{Owner: owner, Code: value.Symbol.Code}
	b, err := tx.balance(ctx, key)
	switch {
	case errors.Is(err, ErrBalanceNotFound):
		tx.putBalance(&balance.Balance{
			Entity:  types.NewEntity(tx.now),
			Owner:   owner,
			Balance: value,
			Payer:   payer,
		})
		return nil
	case err != nil:
		return err
	}

	if b.Balance, err = b.Balance.Add(value); err != nil {
		return arithmeticError(err)
	}
	tx.putBalance(b)
	return nil
}

// Open creates a zero balance row of symbol for owner, paid by ramPayer. It
// requires ramPayer's authority and does nothing if the row already exists.
func (l *Ledger) Open(ctx context.Context, owner types.Name, symbol types.Symbol, ramPayer types.Name) error {
	return l.execute(ctx, receipt.ActionOpen, func(tx *txn) error {
		if err := requireAuth(ctx, l.auth, ramPayer); err != nil {
			return err
		}
		if err := checkSymbol(symbol); err != nil {
			return err
		}
		if err := checkName(owner); err != nil {
			return err
		}

		st, err := tx.stat(ctx, symbol.Code)
		if err != nil {
			return fmt.Errorf("%w: %s", err, symbol.Code)
		}
		if st.Symbol() != symbol {
			return fmt.Errorf("%w: got %s, registered %s", ErrSymbolMismatch, symbol, st.Symbol())
		}

		act := tx.begin(receipt.ActionOpen, ramPayer)
		act.Owner = owner
		act.Payer = ramPayer
		act.Quantity = types.Zero(symbol)

		key := balance.Key{Owner: owner, Code: symbol.Code}
		_, err = tx.balance(ctx, key)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, ErrBalanceNotFound):
			return err
		}

		tx.putBalance(&balance.Balance{
			Entity:  types.NewEntity(tx.now),
			Owner:   owner,
			Balance: types.Zero(symbol),
			Payer:   ramPayer,
		})
		return nil
	})
}

// Close deletes owner's zero balance row of symbol, releasing its storage.
// It requires owner's authority.
func (l *Ledger) Close(ctx context.Context, owner types.Name, symbol types.Symbol) error {
	return l.execute(ctx, receipt.ActionClose, func(tx *txn) error {
		if err := requireAuth(ctx, l.auth, owner); err != nil {
			return err
		}

		key := balance.Key{Owner: owner, Code: symbol.Code}
		b, err := tx.balance(ctx, key)
		if err != nil {
			return fmt.Errorf("%w: %s, balance row already deleted or never existed", err, key)
		}
		if !b.Balance.IsZero() {
			return fmt.Errorf("%w: %s holds %s", ErrNonZeroBalance, owner, b.Balance)
		}

		act := tx.begin(receipt.ActionClose, owner)
		act.Owner = owner
		act.Payer = b.Payer
		act.Quantity = b.Balance

		tx.deleteBalance(key)
		return nil
	})
}
