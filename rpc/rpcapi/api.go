// Package rpcapi implements the JSON-RPC methods served by the entry service.
package rpcapi

import (
	"context"
	"encoding/json"

	"github.com/anyswap/BlockEntry-Service/internal/entryapi"
	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

// method names
const (
	GetBlockEntriesMethod = "getBlockEntries"
)

// RegisterAPIs registers all methods into registry
func RegisterAPIs(registry *jsonrpc.Registry) error {
	return registry.Register(GetBlockEntriesMethod, jsonrpc.HandlerFunc(GetBlockEntries))
}

// NewRegistry returns a registry holding all methods
func NewRegistry() *jsonrpc.Registry {
	registry := jsonrpc.NewRegistry()
	if err := RegisterAPIs(registry); err != nil {
		log.Fatal("register rpc apis failed", "err", err)
	}
	return registry
}

// GetBlockEntries api
func GetBlockEntries(ctx context.Context, params json.RawMessage, reader ledger.Reader) (interface{}, error) {
	slot, err := ParseSlotParam(params)
	if err != nil {
		return nil, err
	}
	entries, err := entryapi.GetBlockEntries(ctx, reader, slot)
	if err != nil {
		log.Debug("getBlockEntries failed", "slot", slot, "err", err)
		return nil, err
	}
	return entries, nil
}
