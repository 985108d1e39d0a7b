package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ledger.Reader = (*Store)(nil)

// ledgerCollections is the read access Store needs from the ledger tables.
type ledgerCollections interface {
	findSlotMeta(ctx context.Context, slot uint64) (*MgoSlotMeta, error)
	findEntries(ctx context.Context, slot, entryCount uint64) ([]*MgoEntry, error)
}

type mgoCollections struct {
	slotMetas *mongo.Collection
	entries   *mongo.Collection
}

func (c *mgoCollections) findSlotMeta(ctx context.Context, slot uint64) (*MgoSlotMeta, error) {
	var meta MgoSlotMeta
	err := c.slotMetas.FindOne(ctx, bson.M{"_id": slot}).Decode(&meta)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *mgoCollections) findEntries(ctx context.Context, slot, entryCount uint64) ([]*MgoEntry, error) {
	filter, opts := entriesQuery(slot, entryCount)
	cur, err := c.entries.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []*MgoEntry
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// entriesQuery selects the committed entries of slot in index order.
func entriesQuery(slot, entryCount uint64) (bson.M, *options.FindOptions) {
	limit := int64(math.MaxInt64)
	if entryCount < math.MaxInt64 {
		limit = int64(entryCount)
	}
	filter := bson.M{"slot": slot, "index": bson.M{"$lt": entryCount}}
	opts := options.Find().
		SetSort(bson.D{{Key: "index", Value: 1}}).
		SetLimit(limit)
	return filter, opts
}

// ReadSlotEntries implements ledger.Reader.
func (s *Store) ReadSlotEntries(ctx context.Context, slot uint64) ([]*ledger.RawEntry, error) {
	meta, err := s.colls.findSlotMeta(ctx, slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrSlotNotFound
		}
		return nil, mgoError("find slot meta", err)
	}
	docs, err := s.colls.findEntries(ctx, slot, meta.EntryCount)
	if err != nil {
		return nil, mgoError("find entries", err)
	}
	return convertEntries(slot, docs)
}

// convertEntries keeps the contiguous prefix starting at index 0.
func convertEntries(slot uint64, docs []*MgoEntry) ([]*ledger.RawEntry, error) {
	entries := make([]*ledger.RawEntry, 0, len(docs))
	for _, doc := range docs {
		if doc.Index != uint64(len(entries)) {
			log.Debug("[mongodb] slot entries have a gap", "slot", slot, "expect", len(entries), "got", doc.Index)
			break
		}
		entry, err := doc.ToRawEntry()
		if err != nil {
			return nil, mgoError(fmt.Sprintf("decode entry %d", doc.Index), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func mgoError(op string, err error) error {
	return &ledger.StorageError{Op: "[mongodb] " + op, Err: err}
}
