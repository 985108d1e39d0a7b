// Package entryapi builds the api results out of ledger data.
package entryapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/params"
)

// GetBlockEntries api
func GetBlockEntries(ctx context.Context, reader ledger.Reader, slot uint64) ([]*BlockEntry, error) {
	raws, err := reader.ReadSlotEntries(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("Failed to read slot %d: %w", slot, err)
	}
	return ConvertRawEntries(raws), nil
}

// GetServerInfo api
func GetServerInfo() (*ServerInfo, error) {
	log.Debug("[api] receive GetServerInfo")
	config := params.GetConfig()
	if config == nil {
		return nil, errors.New("server config is not loaded")
	}
	return &ServerInfo{
		Identifier:       config.Identifier,
		LedgerBackend:    config.Ledger.Backend,
		StrictErrorCodes: config.APIServer.StrictErrorCodes,
		Version:          params.VersionWithMeta,
	}, nil
}

// GetVersionInfo api
func GetVersionInfo() string {
	return params.VersionWithMeta
}
