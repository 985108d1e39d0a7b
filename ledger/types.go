// Package ledger reads slot entries out of a ledger store that another
// process writes.
package ledger

import (
	"context"

	"github.com/anyswap/BlockEntry-Service/common"
)

// RawEntry is one ledger entry as stored by the storage engine.
type RawEntry struct {
	NumHashes        uint64
	Hash             common.Hash
	TransactionCount uint64
}

// Reader is the read access the rpc layer needs from a ledger.
// Implementations must be safe for concurrent use.
type Reader interface {
	// ReadSlotEntries returns the entries of slot in ledger order.
	// It returns ErrSlotNotFound if the ledger has no record of slot and a
	// *StorageError if the storage engine failed or ctx is done.
	ReadSlotEntries(ctx context.Context, slot uint64) ([]*RawEntry, error)
}
