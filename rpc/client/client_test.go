package client

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/BlockEntry-Service/common"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
)

// fakeService answers every request with reply and records the last request body.
func fakeService(t *testing.T, status int, reply string) (*httptest.Server, *map[string]interface{}) {
	t.Helper()
	var last map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &last)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, &last
}

func TestGetBlockEntries(t *testing.T) {
	hash := common.BytesToHash([]byte{7})
	ts, last := fakeService(t, http.StatusOK, `{"jsonrpc":"2.0","id":"q","result":[`+
		`{"index":0,"numHashes":3,"hash":"`+hash.String()+`","numTransactions":2,"startingTransactionIndex":0}]}`)

	entries, err := GetBlockEntriesFrom([]string{ts.URL}, 42, "q")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, hash, entries[0].Hash)
	assert.Equal(t, uint64(2), entries[0].NumTransactions)

	assert.Equal(t, "2.0", (*last)["jsonrpc"])
	assert.Equal(t, "getBlockEntries", (*last)["method"])
	assert.Equal(t, "q", (*last)["id"])
	assert.Equal(t, []interface{}{float64(42)}, (*last)["params"])
}

func TestGetBlockEntriesRPCError(t *testing.T) {
	ts, _ := fakeService(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"Method 'getBlockEntries' failed: boom"}}`)

	_, err := GetBlockEntriesFrom([]string{ts.URL}, 1, 1)
	require.Error(t, err)
	var rpcErr *jsonrpc.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, jsonrpc.ErrCodeInternal, rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "boom")
}

func TestRPCPostRequestBadResponses(t *testing.T) {
	ts, _ := fakeService(t, http.StatusTooManyRequests, `{}`)
	_, err := GetBlockEntriesFrom([]string{ts.URL}, 1, 1)
	assert.Error(t, err)

	ts, _ = fakeService(t, http.StatusOK, `not json`)
	_, err = GetBlockEntriesFrom([]string{ts.URL}, 1, 1)
	assert.Error(t, err)
}

func TestGetServerInfo(t *testing.T) {
	ts, _ := fakeService(t, http.StatusOK, `{"Identifier":"entries","LedgerBackend":"leveldb","StrictErrorCodes":false,"Version":"0.1.0"}`)
	info, err := GetServerInfo(ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "entries", info.Identifier)
	assert.Equal(t, "leveldb", info.LedgerBackend)
}

func TestGetBlockEntriesFrom(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	bad, _ := fakeService(t, http.StatusBadGateway, `bad gateway`)
	good, _ := fakeService(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":[]}`)

	entries, err := GetBlockEntriesFrom([]string{down.URL, bad.URL, good.URL}, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = GetBlockEntriesFrom([]string{down.URL, bad.URL}, 5, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRPCQueryError))

	_, err = GetBlockEntriesFrom(nil, 5, 1)
	assert.True(t, errors.Is(err, ErrRPCQueryError))

	failing, _ := fakeService(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"failed"}}`)
	_, err = GetBlockEntriesFrom([]string{failing.URL, good.URL}, 5, 1)
	var rpcErr *jsonrpc.Error
	assert.True(t, errors.As(err, &rpcErr))
}
