package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/anyswap/BlockEntry-Service/common"
	"github.com/anyswap/BlockEntry-Service/leveldb"
)

// Key layout of the leveldb ledger:
//
//	slot meta: 'm' | be64(slot)              -> be64(entry count)
//	entry:     'e' | be64(slot) | be64(index) -> be64(num hashes) | hash | be64(tx count) | tx bytes
var (
	slotMetaPrefix = []byte("m")
	entryPrefix    = []byte("e")
)

const (
	slotMetaValueLen = 8
	entryHeaderLen   = 8 + common.HashLength + 8
)

// SlotMetaKey returns the key of a slot meta record.
func SlotMetaKey(slot uint64) []byte {
	key := make([]byte, len(slotMetaPrefix)+8)
	copy(key, slotMetaPrefix)
	binary.BigEndian.PutUint64(key[len(slotMetaPrefix):], slot)
	return key
}

// SlotEntriesPrefix returns the key prefix of all entries of slot.
func SlotEntriesPrefix(slot uint64) []byte {
	prefix := make([]byte, len(entryPrefix)+8)
	copy(prefix, entryPrefix)
	binary.BigEndian.PutUint64(prefix[len(entryPrefix):], slot)
	return prefix
}

// EntryKey returns the key of the entry at index of slot.
func EntryKey(slot, index uint64) []byte {
	key := make([]byte, len(entryPrefix)+16)
	copy(key, SlotEntriesPrefix(slot))
	binary.BigEndian.PutUint64(key[len(entryPrefix)+8:], index)
	return key
}

func decodeEntryIndex(key []byte) (uint64, error) {
	if len(key) != len(entryPrefix)+16 {
		return 0, fmt.Errorf("bad entry key length %d", len(key))
	}
	return binary.BigEndian.Uint64(key[len(entryPrefix)+8:]), nil
}

// EncodeSlotMeta encodes the value of a slot meta record.
func EncodeSlotMeta(entryCount uint64) []byte {
	val := make([]byte, slotMetaValueLen)
	binary.BigEndian.PutUint64(val, entryCount)
	return val
}

// DecodeSlotMeta decodes the entry count of a slot meta record.
func DecodeSlotMeta(val []byte) (uint64, error) {
	if len(val) != slotMetaValueLen {
		return 0, fmt.Errorf("bad slot meta length %d", len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

// EncodeEntry encodes an entry value. txs is the opaque transaction payload.
func EncodeEntry(entry *RawEntry, txs []byte) []byte {
	val := make([]byte, entryHeaderLen+len(txs))
	binary.BigEndian.PutUint64(val, entry.NumHashes)
	copy(val[8:], entry.Hash[:])
	binary.BigEndian.PutUint64(val[8+common.HashLength:], entry.TransactionCount)
	copy(val[entryHeaderLen:], txs)
	return val
}

// DecodeEntry decodes an entry value, ignoring the transaction payload.
func DecodeEntry(val []byte) (*RawEntry, error) {
	if len(val) < entryHeaderLen {
		return nil, fmt.Errorf("bad entry length %d", len(val))
	}
	return &RawEntry{
		NumHashes:        binary.BigEndian.Uint64(val),
		Hash:             common.BytesToHash(val[8 : 8+common.HashLength]),
		TransactionCount: binary.BigEndian.Uint64(val[8+common.HashLength:]),
	}, nil
}

// WriteSlot queues the entries of slot and its meta record into batch.
// The ledger itself never writes; this is the layout a writer must produce.
func WriteSlot(batch leveldb.Batch, slot uint64, entries []*RawEntry) error {
	for i, entry := range entries {
		if err := batch.Put(EntryKey(slot, uint64(i)), EncodeEntry(entry, nil)); err != nil {
			return err
		}
	}
	return batch.Put(SlotMetaKey(slot), EncodeSlotMeta(uint64(len(entries))))
}
