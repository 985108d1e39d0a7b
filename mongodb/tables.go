package mongodb

import (
	"github.com/anyswap/BlockEntry-Service/common"
	"github.com/anyswap/BlockEntry-Service/ledger"
)

const (
	tbSlotMetas string = "SlotMetas"
	tbEntries   string = "Entries"
)

// MgoSlotMeta slot meta, written once the slot entries are committed
type MgoSlotMeta struct {
	Slot       uint64 `bson:"_id"`
	EntryCount uint64 `bson:"entrycount"`
}

// MgoEntry ledger entry
type MgoEntry struct {
	Key       string `bson:"_id"` // slot:index
	Slot      uint64 `bson:"slot"`
	Index     uint64 `bson:"index"`
	NumHashes uint64 `bson:"numhashes"`
	Hash      string `bson:"hash"` // base58
	TxCount   uint64 `bson:"txcount"`
}

// ToRawEntry converts to the ledger entry
func (me *MgoEntry) ToRawEntry() (*ledger.RawEntry, error) {
	hash, err := common.Base58ToHash(me.Hash)
	if err != nil {
		return nil, err
	}
	return &ledger.RawEntry{
		NumHashes:        me.NumHashes,
		Hash:             hash,
		TransactionCount: me.TxCount,
	}, nil
}
