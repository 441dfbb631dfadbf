package tokenledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/auth"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/types"
)

// Create registers a new symbol with issuer and a supply cap of maxSupply.
// It requires the authority of the ledger's own account.
func (l *Ledger) Create(ctx context.Context, issuer types.Name, maxSupply types.Asset) error {
	return l.execute(ctx, receipt.ActionCreate, func(tx *txn) error {
		if err := requireAuth(ctx, l.auth, l.self); err != nil {
			return err
		}

		sym := maxSupply.Symbol
		if err := checkSymbol(sym); err != nil {
			return err
		}
		if !maxSupply.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidSupply, maxSupply.Amount)
		}
		if !maxSupply.IsPositive() {
			return ErrNonPositiveMaxSupply
		}
		if err := checkName(issuer); err != nil {
			return err
		}

		_, err := tx.stat(ctx, sym.Code)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrSymbolExists, sym.Code)
		case !errors.Is(err, ErrSymbolNotFound):
			return err
		}

		act := tx.begin(receipt.ActionCreate, l.self)
		act.Issuer = issuer
		act.Payer = l.self
		act.Quantity = maxSupply

		tx.putStat(&currency.Stat{
			Entity:    types.NewEntity(tx.now),
			Supply:    types.Zero(sym),
			MaxSupply: maxSupply,
			Issuer:    issuer,
			Payer:     l.self,
		})
		return nil
	})
}

// Issue mints quantity into the issuer's balance and, when to is another
// account, forwards it with an inline transfer carrying memo. It requires the
// issuer's authority.
func (l *Ledger) Issue(ctx context.Context, to types.Name, quantity types.Asset, memo string) error {
	return l.execute(ctx, receipt.ActionIssue, func(tx *txn) error {
		if err := checkSymbol(quantity.Symbol); err != nil {
			return err
		}
		if err := checkMemo(memo); err != nil {
			return err
		}

		st, err := tx.stat(ctx, quantity.Symbol.Code)
		if err != nil {
			return fmt.Errorf("%w: %s, create token before issue", err, quantity.Symbol.Code)
		}
		if err := requireAuth(ctx, l.auth, st.Issuer); err != nil {
			return err
		}
		if err := checkQuantity(quantity); err != nil {
			return err
		}
		if err := checkSameSymbol(quantity, st.Symbol()); err != nil {
			return err
		}
		if quantity.Amount > st.Available().Amount {
			return fmt.Errorf("%w: %s available, %s requested", ErrSupplyExceeded, st.Available(), quantity)
		}

		act := tx.begin(receipt.ActionIssue, st.Issuer)
		act.Issuer = st.Issuer
		act.To = to
		act.Payer = st.Issuer
		act.Quantity = quantity
		act.Memo = memo

		if st.Supply, err = st.Supply.Add(quantity); err != nil {
			return arithmeticError(err)
		}
		tx.putStat(st)

		if err := l.addBalance(ctx, tx, st.Issuer, quantity, st.Issuer); err != nil {
			return err
		}

		if to != st.Issuer {
			return l.transfer(ctx, tx, auth.Static{st.Issuer}, st.Issuer, to, quantity, memo)
		}
		return nil
	})
}

// Retire burns quantity from the issuer's own balance and reduces supply.
// It requires the issuer's authority.
func (l *Ledger) Retire(ctx context.Context, quantity types.Asset, memo string) error {
	return l.execute(ctx, receipt.ActionRetire, func(tx *txn) error {
		if err := checkSymbol(quantity.Symbol); err != nil {
			return err
		}
		if err := checkMemo(memo); err != nil {
			return err
		}

		st, err := tx.stat(ctx, quantity.Symbol.Code)
		if err != nil {
			return fmt.Errorf("%w: %s", err, quantity.Symbol.Code)
		}
		if err := requireAuth(ctx, l.auth, st.Issuer); err != nil {
			return err
		}
		if err := checkQuantity(quantity); err != nil {
			return err
		}
		if err := checkSameSymbol(quantity, st.Symbol()); err != nil {
			return err
		}

		act := tx.begin(receipt.ActionRetire, st.Issuer)
		act.Issuer = st.Issuer
		act.Quantity = quantity
		act.Memo = memo

		if st.Supply, err = st.Supply.Sub(quantity); err != nil {
			return arithmeticError(err)
		}
		tx.putStat(st)

		return l.subBalance(ctx, tx, st.Issuer, quantity, st.Issuer)
	})
}
