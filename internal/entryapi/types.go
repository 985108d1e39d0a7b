package entryapi

import (
	"github.com/anyswap/BlockEntry-Service/common"
)

// BlockEntry entry metadata returned by getBlockEntries
type BlockEntry struct {
	Index                    uint64      `json:"index"`
	NumHashes                uint64      `json:"numHashes"`
	Hash                     common.Hash `json:"hash"`
	NumTransactions          uint64      `json:"numTransactions"`
	StartingTransactionIndex uint64      `json:"startingTransactionIndex"`
}

// ServerInfo server info
type ServerInfo struct {
	Identifier       string
	LedgerBackend    string
	StrictErrorCodes bool
	Version          string
}
