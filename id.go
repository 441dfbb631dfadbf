package tokenledger

import "github.com/xraph/tokenledger/id"

// ID identifies a receipt or an action.
type ID = id.ID

// Prefix identifies the kind of object encoded in a TypeID.
type Prefix = id.Prefix
