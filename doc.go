// Package tokenledger implements a fungible-token ledger: a registry of token
// symbols with capped supply, per-account balances, and delegated spending
// allowances.
//
// The ledger is a library, not a service. It runs inside a host that decides
// who has signed an invocation (Authorizer) and which accounts exist
// (AccountChecker), and it persists three tables through a store.Store.
//
// # Quick Start
//
//	import (
//	    "github.com/xraph/tokenledger"
//	    "github.com/xraph/tokenledger/auth"
//	    "github.com/xraph/tokenledger/store/memory"
//	)
//
//	l := tokenledger.New("eosio.token", memory.New())
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
//	ctx = auth.WithAuthority(ctx, "eosio.token")
//	err := l.Create(ctx, "alice", tokenledger.MustAsset("1000.00 TKN"))
//
// # Operations
//
// Create registers a symbol. Issue mints up to the cap and optionally forwards
// to another account. Retire burns from the issuer. Transfer moves tokens
// between accounts. Open and Close manage zero-balance rows explicitly.
// Approve and TransferFrom delegate spending to another account.
//
// Every operation either commits all of its writes or none of them. A
// committed operation produces a receipt.Receipt; plugins observe receipts,
// the notified accounts of each action, and rejected operations.
//
// # Amounts
//
// An Asset is a signed 64-bit amount in the smallest unit of its symbol,
// bounded by 2^62-1. Precision is part of the symbol: "1.00 TKN" and
// "1.000 TKN" are different symbols that share the code TKN, and a code can be
// registered only once.
//
// # Storage
//
// Backends live under store/: an in-memory store, embedded key-value stores
// (bbolt, badger, goleveldb), PostgreSQL and MongoDB. store/storetest holds
// the conformance suite every backend is expected to pass.
package tokenledger
