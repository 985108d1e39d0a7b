package ledger

import (
	"context"
	"fmt"

	"github.com/anyswap/BlockEntry-Service/leveldb"
	"github.com/anyswap/BlockEntry-Service/log"
)

var _ Reader = (*Blockstore)(nil)

// the slot meta count is untrusted, it only bounds the read
const maxPreallocEntries = 1024

// Blockstore is a read-only ledger backed by leveldb.
type Blockstore struct {
	db *leveldb.Database
}

// OpenBlockstore attaches to the ledger at path without write access.
func OpenBlockstore(path string, cache, handles int) (*Blockstore, error) {
	db, err := leveldb.New(path, cache, handles, true)
	if err != nil {
		return nil, fmt.Errorf("open ledger %v: %w", path, err)
	}
	log.Info("open ledger blockstore success", "path", path)
	return &Blockstore{db: db}, nil
}

// NewBlockstore wraps an already opened database.
func NewBlockstore(db *leveldb.Database) *Blockstore {
	return &Blockstore{db: db}
}

// Close closes the underlying database.
func (bs *Blockstore) Close() error {
	return bs.db.Close()
}

// ReadSlotEntries implements Reader.
// Meta and entries are read from one snapshot. Only the committed prefix
// 0..entryCount is returned and reading stops at the first missing index.
func (bs *Blockstore) ReadSlotEntries(ctx context.Context, slot uint64) ([]*RawEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("read", err)
	}
	snap, err := bs.db.NewSnapshot()
	if err != nil {
		return nil, storageError("snapshot", err)
	}
	defer snap.Release()

	metaVal, err := snap.Get(SlotMetaKey(slot))
	if err != nil {
		if leveldb.IsNotFoundErr(err) {
			return nil, ErrSlotNotFound
		}
		return nil, storageError("get slot meta", err)
	}
	entryCount, err := DecodeSlotMeta(metaVal)
	if err != nil {
		return nil, storageError("decode slot meta", err)
	}

	prealloc := entryCount
	if prealloc > maxPreallocEntries {
		prealloc = maxPreallocEntries
	}
	entries := make([]*RawEntry, 0, prealloc)
	it := snap.NewIterator(SlotEntriesPrefix(slot), nil)
	defer it.Release()
	for uint64(len(entries)) < entryCount && it.Next() {
		index, err := decodeEntryIndex(it.Key())
		if err != nil {
			return nil, storageError("decode entry key", err)
		}
		if index != uint64(len(entries)) {
			log.Debug("slot entries have a gap", "slot", slot, "expect", len(entries), "got", index)
			break
		}
		entry, err := DecodeEntry(it.Value())
		if err != nil {
			return nil, storageError(fmt.Sprintf("decode entry %d", index), err)
		}
		entries = append(entries, entry)
	}
	if err := it.Error(); err != nil {
		return nil, storageError("iterate entries", err)
	}
	return entries, nil
}
