package tokenledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/receipt"
	"github.com/xraph/tokenledger/types"
)

// Approve sets the quantity spender may move out of owner's balance. A zero
// quantity revokes the allowance. It requires owner's authority, and the row
// is paid for by owner.
func (l *Ledger) Approve(ctx context.Context, owner, spender types.Name, quantity types.Asset) error {
	return l.execute(ctx, receipt.ActionApprove, func(tx *txn) error {
		if owner == spender {
			return ErrSelfAllowance
		}
		if err := requireAuth(ctx, l.auth, owner); err != nil {
			return err
		}
		if err := l.requireAccount(ctx, spender); err != nil {
			return err
		}

		st, err := tx.stat(ctx, quantity.Symbol.Code)
		if err != nil {
			return fmt.Errorf("%w: %s", err, quantity.Symbol.Code)
		}

		act := tx.begin(receipt.ActionApprove, owner)
		act.Owner = owner
		act.Spender = spender
		act.Payer = owner
		act.Quantity = quantity
		act.Notify(owner)
		act.Notify(spender)

		if !quantity.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity.Amount)
		}
		if quantity.IsNegative() {
			return ErrNegativeQuantity
		}
		if err := checkSameSymbol(quantity, st.Symbol()); err != nil {
			return err
		}

		key := allowance.Key{Owner: owner, Spender: spender, Code: quantity.Symbol.Code}
		cur, err := tx.allowance(ctx, key)
		switch {
		case errors.Is(err, ErrAllowanceNotFound):
			if quantity.IsZero() {
				return nil
			}
			tx.putAllowance(&allowance.Allowance{
				Entity:   types.NewEntity(tx.now),
				Owner:    owner,
				Spender:  spender,
				Quantity: quantity,
				Payer:    owner,
			})
			return nil
		case err != nil:
			return err
		}

		if quantity.IsZero() {
			tx.deleteAllowance(key)
			return nil
		}
		cur.Quantity = quantity
		cur.Payer = owner
		tx.putAllowance(cur)
		return nil
	})
}

// TransferFrom moves quantity from one account to another on the authority
// of spender, consuming spender's allowance from from. Rows touched by the
// transfer are paid for by spender.
func (l *Ledger) TransferFrom(ctx context.Context, from, to, spender types.Name, quantity types.Asset, memo string) error {
	return l.execute(ctx, receipt.ActionTransferFrom, func(tx *txn) error {
		if from == to {
			return ErrSelfTransfer
		}
		if err := l.requireAccount(ctx, from); err != nil {
			return err
		}
		if err := l.requireAccount(ctx, to); err != nil {
			return err
		}

		st, err := tx.stat(ctx, quantity.Symbol.Code)
		if err != nil {
			return fmt.Errorf("%w: %s", err, quantity.Symbol.Code)
		}

		act := tx.begin(receipt.ActionTransferFrom, spender)
		act.Spender = spender
		act.From = from
		act.To = to
		act.Payer = spender
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

		key := allowance.Key{Owner: from, Spender: spender, Code: quantity.Symbol.Code}
		allowed, err := tx.allowance(ctx, key)
		if errors.Is(err, ErrAllowanceNotFound) {
			return fmt.Errorf("%w: %s may not spend %s of %s", ErrSpenderNotAllowed, spender, quantity.Symbol.Code, from)
		}
		if err != nil {
			return err
		}

		if err := requireAuth(ctx, l.auth, spender); err != nil {
			return err
		}
		if !allowed.Quantity.IsValid() || !allowed.Quantity.IsPositive() {
			return fmt.Errorf("%w: %s", ErrInvalidAllowance, allowed.Quantity)
		}
		if allowed.Quantity.Symbol != quantity.Symbol {
			return fmt.Errorf("%w: allowance in %s", ErrSymbolMismatch, allowed.Quantity.Symbol)
		}
		if allowed.Quantity.Amount < quantity.Amount {
			return fmt.Errorf("%w: %s allowed, %s requested", ErrInsufficientAllowance, allowed.Quantity, quantity)
		}

		if err := l.subBalance(ctx, tx, from, quantity, spender); err != nil {
			return err
		}
		if err := l.addBalance(ctx, tx, to, quantity, spender); err != nil {
			return err
		}

		if allowed.Quantity.Amount == quantity.Amount {
			tx.deleteAllowance(key)
			return nil
		}
		if allowed.Quantity, err = allowed.Quantity.Sub(quantity); err != nil {
			return arithmeticError(err)
		}
		allowed.Payer = spender
		tx.putAllowance(allowed)
		return nil
	})
}
