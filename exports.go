package tokenledger

import "github.com/xraph/tokenledger/types"

// Re-export common types so users don't have to import the types package.

// Name is an account name.
type Name = types.Name

// Asset is a quantity of one token symbol.
type Asset = types.Asset

// Symbol is a token symbol code with its precision.
type Symbol = types.Symbol

// SymbolCode is the 1-7 letter code that keys a token.
type SymbolCode = types.SymbolCode

// Re-export constructors and parsers.
var (
	ParseName   = types.ParseName
	MustName    = types.MustName
	NewSymbol   = types.NewSymbol
	ParseSymbol = types.ParseSymbol
	MustSymbol  = types.MustSymbol
	NewAsset    = types.NewAsset
	ParseAsset  = types.ParseAsset
	MustAsset   = types.MustAsset
	Zero        = types.Zero
)
