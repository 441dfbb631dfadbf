package postgres

import (
	"fmt"
	"strings"

	"github.com/xraph/tokenledger/store"
)

// statement accumulates data-modifying CTEs so that a whole change set runs
// as one SQL statement, which PostgreSQL executes atomically.
type statement struct {
	ctes []string
	args []any
}

// add appends one CTE. sql uses ? for each argument in order.
func (st *statement) add(sql string, args ...any) {
	var b strings.Builder
	n := len(st.args)
	for _, r := range sql {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	st.ctes = append(st.ctes, fmt.Sprintf("c%d AS (%s RETURNING 1)", len(st.ctes), b.String()))
	st.args = append(st.args, args...)
}

// SQL returns the combined statement.
func (st *statement) SQL() string {
	return "WITH " + strings.Join(st.ctes, ", ") + " SELECT 1"
}

const (
	upsertStat = `INSERT INTO tokenledger_stats (code, symbol_precision, supply, max_supply, issuer, payer, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (code) DO UPDATE SET supply = EXCLUDED.supply, max_supply = EXCLUDED.max_supply, payer = EXCLUDED.payer, updated_at = EXCLUDED.updated_at`

	upsertBalance = `INSERT INTO tokenledger_balances (owner, code, symbol_precision, amount, payer, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (owner, code) DO UPDATE SET amount = EXCLUDED.amount, payer = EXCLUDED.payer, updated_at = EXCLUDED.updated_at`

	deleteBalance = `DELETE FROM tokenledger_balances WHERE owner = ? AND code = ?`

	upsertAllowance = `INSERT INTO tokenledger_allowances (owner, spender, code, symbol_precision, amount, payer, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (owner, spender, code) DO UPDATE SET amount = EXCLUDED.amount, payer = EXCLUDED.payer, updated_at = EXCLUDED.updated_at`

	deleteAllowance = `DELETE FROM tokenledger_allowances WHERE owner = ? AND spender = ? AND code = ?`
)

// buildCommit translates cs into one statement. Rows are visited in key
// order so equal change sets always produce identical SQL.
func buildCommit(cs *store.ChangeSet) *statement {
	st := &statement{}

	for _, code := range cs.StatCodes() {
		s := cs.Stats[code]
		if s == nil {
			continue
		}
		m := toStatModel(s)
		st.add(upsertStat, m.Code, m.Precision, m.Supply, m.MaxSupply, m.Issuer, m.Payer, m.CreatedAt, m.UpdatedAt)
	}

	for _, k := range cs.BalanceKeys() {
		b := cs.Balances[k]
		if b == nil {
			st.add(deleteBalance, string(k.Owner), string(k.Code))
			continue
		}
		m := toBalanceModel(b)
		st.add(upsertBalance, m.Owner, m.Code, m.Precision, m.Amount, m.Payer, m.CreatedAt, m.UpdatedAt)
	}

	for _, k := range cs.AllowanceKeys() {
		a := cs.Allowances[k]
		if a == nil {
			st.add(deleteAllowance, string(k.Owner), string(k.Spender), string(k.Code))
			continue
		}
		m := toAllowanceModel(a)
		st.add(upsertAllowance, m.Owner, m.Spender, m.Code, m.Precision, m.Amount, m.Payer, m.CreatedAt, m.UpdatedAt)
	}

	return st
}
