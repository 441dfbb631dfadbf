package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/types"
)

var cmdCreate = &cobra.Command{
	Use:   "create ISSUER MAX-SUPPLY",
	Short: "Register a new symbol (requires the contract's authority)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		issuer, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		maxSupply, err := types.ParseAsset(args[1])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Create(ctx, issuer, maxSupply)
		})
	},
}

var cmdIssue = &cobra.Command{
	Use:   "issue TO QUANTITY [MEMO]",
	Short: "Mint tokens and deliver them to an account (requires the issuer's authority)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(_ *cobra.Command, args []string) error {
		to, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		qty, err := types.ParseAsset(args[1])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Issue(ctx, to, qty, memoArg(args, 2))
		})
	},
}

var cmdRetire = &cobra.Command{
	Use:   "retire QUANTITY [MEMO]",
	Short: "Burn tokens from the issuer's balance (requires the issuer's authority)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		qty, err := types.ParseAsset(args[0])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Retire(ctx, qty, memoArg(args, 1))
		})
	},
}

var cmdTransfer = &cobra.Command{
	Use:   "transfer FROM TO QUANTITY [MEMO]",
	Short: "Move tokens between accounts (requires FROM's authority)",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(_ *cobra.Command, args []string) error {
		names, err := parseNames(args[:2])
		if err != nil {
			return err
		}
		qty, err := types.ParseAsset(args[2])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Transfer(ctx, names[0], names[1], qty, memoArg(args, 3))
		})
	},
}

var cmdOpen = &cobra.Command{
	Use:   "open OWNER SYMBOL RAM-PAYER",
	Short: "Create a zero balance row (requires RAM-PAYER's authority)",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		owner, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		sym, err := types.ParseSymbol(args[1])
		if err != nil {
			return err
		}
		payer, err := types.ParseName(args[2])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Open(ctx, owner, sym, payer)
		})
	},
}

var cmdClose = &cobra.Command{
	Use:   "close OWNER SYMBOL",
	Short: "Delete a zero balance row (requires OWNER's authority)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		owner, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		sym, err := types.ParseSymbol(args[1])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Close(ctx, owner, sym)
		})
	},
}

var cmdApprove = &cobra.Command{
	Use:   "approve OWNER SPENDER QUANTITY",
	Short: "Set how much SPENDER may move out of OWNER's balance (requires OWNER's authority)",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		names, err := parseNames(args[:2])
		if err != nil {
			return err
		}
		qty, err := types.ParseAsset(args[2])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.Approve(ctx, names[0], names[1], qty)
		})
	},
}

var cmdTransferFrom = &cobra.Command{
	Use:   "transferfrom FROM TO SPENDER QUANTITY [MEMO]",
	Short: "Spend an allowance (requires SPENDER's authority)",
	Args:  cobra.RangeArgs(4, 5),
	RunE: func(_ *cobra.Command, args []string) error {
		names, err := parseNames(args[:3])
		if err != nil {
			return err
		}
		qty, err := types.ParseAsset(args[3])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			return l.TransferFrom(ctx, names[0], names[1], names[2], qty, memoArg(args, 4))
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		cmdCreate, cmdIssue, cmdRetire, cmdTransfer,
		cmdOpen, cmdClose, cmdApprove, cmdTransferFrom,
	} {
		cmd.PostRun = func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
		}
		cmdMain.AddCommand(cmd)
	}
}
