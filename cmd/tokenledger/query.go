package main

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/currency"
	"github.com/xraph/tokenledger/types"
)

var cmdStats = &cobra.Command{
	Use:   "stats [CODE]",
	Short: "Show registered symbols",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			if len(args) == 1 {
				st, err := l.Stat(ctx, types.SymbolCode(args[0]))
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), []*currency.Stat{st})
				return nil
			}
			stats, err := l.Stats(ctx)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		})
	},
}

var cmdBalances = &cobra.Command{
	Use:   "balances OWNER",
	Short: "Show an account's balances",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			rows, err := l.Balances(ctx, owner)
			if err != nil {
				return err
			}
			printBalances(cmd.OutOrStdout(), rows)
			return nil
		})
	},
}

var cmdAllowances = &cobra.Command{
	Use:   "allowances OWNER",
	Short: "Show the allowances an account has granted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := types.ParseName(args[0])
		if err != nil {
			return err
		}
		return run(func(ctx context.Context, l *tokenledger.Ledger) error {
			rows, err := l.Allowances(ctx, owner)
			if err != nil {
				return err
			}
			printAllowances(cmd.OutOrStdout(), rows)
			return nil
		})
	},
}

func init() {
	cmdMain.AddCommand(cmdStats, cmdBalances, cmdAllowances)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func printStats(w io.Writer, stats []*currency.Stat) {
	t := newTable(w, "Symbol", "Supply", "Max Supply", "Issuer")
	for _, st := range stats {
		t.Append([]string{st.Symbol().String(), st.Supply.String(), st.MaxSupply.String(), st.Issuer.String()})
	}
	t.Render()
}

func printBalances(w io.Writer, rows []*balance.Balance) {
	t := newTable(w, "Balance", "Payer")
	for _, b := range rows {
		t.Append([]string{b.Balance.String(), b.Payer.String()})
	}
	t.Render()
}

func printAllowances(w io.Writer, rows []*allowance.Allowance) {
	t := newTable(w, "Spender", "Quantity", "Payer")
	for _, a := range rows {
		t.Append([]string{a.Spender.String(), a.Quantity.String(), a.Payer.String()})
	}
	t.Render()
}
