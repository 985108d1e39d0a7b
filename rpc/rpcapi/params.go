package rpcapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

// ParseSlotParam extracts the slot from params.
// Accepted shapes are an array whose first element is a u64, or a bare u64.
// Numbers are parsed from their raw text, so 42.0 and 1e3 are rejected.
func ParseSlotParam(params json.RawMessage) (uint64, error) {
	raw := bytes.TrimSpace(params)
	if len(raw) == 0 {
		return 0, jsonrpc.NewParamsError("Invalid slot param format")
	}
	switch {
	case raw[0] == '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
			return 0, jsonrpc.NewParamsError("Invalid slot param format")
		}
		slot, ok := parseU64(arr[0])
		if !ok {
			return 0, jsonrpc.NewParamsError("First array element is not a valid u64")
		}
		return slot, nil
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		slot, ok := parseU64(raw)
		if !ok {
			return 0, jsonrpc.NewParamsError("Param is not a valid u64")
		}
		return slot, nil
	default:
		return 0, jsonrpc.NewParamsError("Invalid slot param format")
	}
}

func parseU64(raw json.RawMessage) (uint64, bool) {
	slot, err := strconv.ParseUint(string(bytes.TrimSpace(raw)), 10, 64)
	return slot, err == nil
}
