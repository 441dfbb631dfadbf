package kv

import (
	"encoding/binary"

	"github.com/xraph/tokenledger/allowance"
	"github.com/xraph/tokenledger/balance"
	"github.com/xraph/tokenledger/types"
)

// Table tags.
const (
	tagStat      byte = 's'
	tagBalance   byte = 'b'
	tagAllowance byte = 'a'
)

// key builds a composite key. Length prefixes keep the encoding injective:
// ("ab", "c") and ("a", "bc") never produce the same bytes, and the key of a
// row always starts with the key of every leading subset of its components.
func key(tag byte, parts ...string) []byte {
	n := 1
	for _, p := range parts {
		n += binary.MaxVarintLen64 + len(p)
	}
	k := make([]byte, 1, n)
	k[0] = tag
	for _, p := range parts {
		k = binary.AppendUvarint(k, uint64(len(p)))
		k = append(k, p...)
	}
	return k
}

func statKey(code types.SymbolCode) []byte { return key(tagStat, string(code)) }

func statPrefix() []byte { return []byte{tagStat} }

func balanceKey(k balance.Key) []byte {
	return key(tagBalance, string(k.Owner), string(k.Code))
}

func balancePrefix(owner types.Name) []byte { return key(tagBalance, string(owner)) }

func allowanceKey(k allowance.Key) []byte {
	return key(tagAllowance, string(k.Owner), string(k.Spender), string(k.Code))
}

func allowancePrefix(owner types.Name) []byte { return key(tagAllowance, string(owner)) }
