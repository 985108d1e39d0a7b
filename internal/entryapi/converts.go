package entryapi

import (
	"github.com/anyswap/BlockEntry-Service/ledger"
)

// ConvertRawEntries converts ledger entries of one slot into block entries.
// StartingTransactionIndex of each entry is the number of transactions in
// all entries before it.
func ConvertRawEntries(raws []*ledger.RawEntry) []*BlockEntry {
	result := make([]*BlockEntry, len(raws))
	var txIndex uint64
	for i, raw := range raws {
		result[i] = &BlockEntry{
			Index:                    uint64(i),
			NumHashes:                raw.NumHashes,
			Hash:                     raw.Hash,
			NumTransactions:          raw.TransactionCount,
			StartingTransactionIndex: txIndex,
		}
		txIndex += raw.TransactionCount
	}
	return result
}
