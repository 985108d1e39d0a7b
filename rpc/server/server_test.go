package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/BlockEntry-Service/common"
	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/leveldb"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
	"github.com/anyswap/BlockEntry-Service/rpc/rpcapi"
)

func openTestLedger(t *testing.T) *ledger.Blockstore {
	t.Helper()
	dir := t.TempDir()
	db, err := leveldb.New(dir, 0, 0, false)
	require.NoError(t, err)
	batch := db.NewBatch()
	require.NoError(t, ledger.WriteSlot(batch, 42, []*ledger.RawEntry{
		{NumHashes: 1, Hash: common.BytesToHash([]byte{0xaa}), TransactionCount: 2},
		{NumHashes: 2, Hash: common.BytesToHash([]byte{0xbb}), TransactionCount: 0},
		{NumHashes: 3, Hash: common.BytesToHash([]byte{0xcc}), TransactionCount: 4},
	}))
	require.NoError(t, ledger.WriteSlot(batch, 43, nil))
	require.NoError(t, batch.Write())
	require.NoError(t, db.Close())

	bs, err := ledger.OpenBlockstore(dir, 0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bs.Close() })
	return bs
}

func newTestServer(t *testing.T, modify func(c *params.APIServerConfig)) (*Server, *httptest.Server) {
	t.Helper()
	config := &params.NewDefaultConfig().APIServer
	if modify != nil {
		modify(config)
	}
	router := jsonrpc.NewRouter(rpcapi.NewRegistry(), openTestLedger(t), jsonrpc.WithStrictErrorCodes(config.StrictErrorCodes))
	s := NewServer(config, router)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeResponse(t *testing.T, data []byte) *jsonrpc.Response {
	t.Helper()
	var resp jsonrpc.Response
	require.NoError(t, json.Unmarshal(data, &resp), string(data))
	assert.Equal(t, jsonrpc.Version, resp.JSONRPC)
	return &resp
}

const getEntries42 = `{"jsonrpc":"2.0","id":1,"method":"getBlockEntries","params":[42]}`

func TestServeRPC(t *testing.T) {
	_, ts := newTestServer(t, nil)

	for _, path := range []string{"/", "/rpc"} {
		httpResp, data := post(t, ts.URL+path, getEntries42)
		assert.Equal(t, http.StatusOK, httpResp.StatusCode)
		assert.Equal(t, "application/json", httpResp.Header.Get("Content-Type"))
		resp := decodeResponse(t, data)
		require.Nil(t, resp.Error)

		var entries []struct {
			Index                    uint64 `json:"index"`
			NumTransactions          uint64 `json:"numTransactions"`
			StartingTransactionIndex uint64 `json:"startingTransactionIndex"`
			Hash                     common.Hash
		}
		require.NoError(t, json.Unmarshal(resp.Result, &entries))
		require.Len(t, entries, 3)
		assert.Equal(t, []uint64{0, 2, 2}, []uint64{
			entries[0].StartingTransactionIndex,
			entries[1].StartingTransactionIndex,
			entries[2].StartingTransactionIndex,
		})
		assert.Equal(t, common.BytesToHash([]byte{0xcc}), entries[2].Hash)
	}

	_, data := post(t, ts.URL, `{"jsonrpc":"2.0","id":"e","method":"getBlockEntries","params":43}`)
	resp := decodeResponse(t, data)
	require.Nil(t, resp.Error)
	assert.Equal(t, "[]", string(resp.Result))
}

func TestServeRPCErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)

	cases := []struct {
		body string
		code int
		id   string
		msg  string
	}{
		{`{"jsonrpc":"1.0","id":1,"method":"getBlockEntries","params":[42]}`, jsonrpc.ErrCodeInvalidRequest, `1`, "Invalid JSON-RPC version (expected '2.0')"},
		{`{"jsonrpc":"2.0","id":"abc","method":"nope"}`, jsonrpc.ErrCodeInternal, `"abc"`, "Method 'nope' failed: Method 'nope' not found"},
		{`{"jsonrpc":"2.0","id":2,"method":"getBlockEntries","params":[44]}`, jsonrpc.ErrCodeInternal, `2`, "Method 'getBlockEntries' failed: Failed to read slot 44: slot not found"},
		{`{"jsonrpc":"2.0","method":"getBlockEntries","params":"42"}`, jsonrpc.ErrCodeInternal, `null`, "Method 'getBlockEntries' failed: Invalid slot param format"},
		{`{"jsonrpc":`, jsonrpc.ErrCodeParse, `null`, "Parse error"},
		{`[{"jsonrpc":"2.0","id":1,"method":"getBlockEntries","params":[42]}]`, jsonrpc.ErrCodeInvalidRequest, `null`, ""},
	}
	for _, c := range cases {
		httpResp, data := post(t, ts.URL, c.body)
		assert.Equal(t, http.StatusOK, httpResp.StatusCode, c.body)
		resp := decodeResponse(t, data)
		require.NotNil(t, resp.Error, c.body)
		assert.Nil(t, resp.Result, c.body)
		assert.Equal(t, c.code, resp.Error.Code, c.body)
		assert.Equal(t, c.id, string(resp.ID), c.body)
		if c.msg != "" {
			assert.Equal(t, c.msg, resp.Error.Message, c.body)
		}
	}
}

func TestServeRPCStrictCodes(t *testing.T) {
	_, ts := newTestServer(t, func(c *params.APIServerConfig) { c.StrictErrorCodes = true })

	_, data := post(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"nope"}`)
	assert.Equal(t, jsonrpc.ErrCodeMethodNotFound, decodeResponse(t, data).Error.Code)

	_, data = post(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getBlockEntries","params":"42"}`)
	assert.Equal(t, jsonrpc.ErrCodeInvalidParams, decodeResponse(t, data).Error.Code)

	_, data = post(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getBlockEntries","params":[44]}`)
	assert.Equal(t, jsonrpc.ErrCodeInternal, decodeResponse(t, data).Error.Code)
}

func TestServeRPCTransportErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	big := `{"jsonrpc":"2.0","id":1,"method":"getBlockEntries","params":[42],"pad":"` +
		strings.Repeat("x", maxRequestContentLength) + `"}`
	httpResp, data := post(t, ts.URL, big)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	rpcResp := decodeResponse(t, data)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, jsonrpc.ErrCodeInvalidRequest, rpcResp.Error.Code)
}

func TestServeRPCConcurrent(t *testing.T) {
	_, ts := newTestServer(t, nil)

	bodies := []string{
		getEntries42,
		`{"jsonrpc":"2.0","id":2,"method":"getBlockEntries","params":43}`,
		`{"jsonrpc":"2.0","id":3,"method":"getBlockEntries","params":[44]}`,
	}
	expected := make([]string, len(bodies))
	for i, body := range bodies {
		_, data := post(t, ts.URL, body)
		expected[i] = string(data)
	}

	const rounds = 16
	results := make([]string, rounds*len(bodies))
	errs := make([]error, len(results))
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(ts.URL, "application/json", strings.NewReader(bodies[i%len(bodies)]))
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			data, err := io.ReadAll(resp.Body)
			results[i], errs[i] = string(data), err
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, expected[i%len(bodies)], result)
	}
}

func TestServeWebsocket(t *testing.T) {
	_, ts := newTestServer(t, nil)

	_, httpData := post(t, ts.URL, getEntries42)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(getEntries42)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"jsonrpc":"1.0","id":9,"method":"getBlockEntries"}`)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, string(httpData), string(data))

	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	resp := decodeResponse(t, data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrCodeInvalidRequest, resp.Error.Code)
	assert.Equal(t, "9", string(resp.ID))
}

func TestWebsocketDisabled(t *testing.T) {
	_, ts := newTestServer(t, func(c *params.APIServerConfig) { c.EnableWebsocket = false })
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckOrigin(t *testing.T) {
	s, _ := newTestServer(t, func(c *params.APIServerConfig) { c.AllowedOrigins = []string{"https://explorer.example"} })

	req := httptest.NewRequest(http.MethodGet, "http://node.example/ws", nil)
	assert.True(t, s.checkOrigin(req))

	req.Header.Set("Origin", "https://explorer.example")
	assert.True(t, s.checkOrigin(req))

	req.Header.Set("Origin", "http://node.example")
	assert.True(t, s.checkOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, s.checkOrigin(req))
}

func TestRateLimit(t *testing.T) {
	_, ts := newTestServer(t, func(c *params.APIServerConfig) { c.MaxRequestsLimit = 1 })

	var limited int
	for i := 0; i < 5; i++ {
		httpResp, data := post(t, ts.URL, getEntries42)
		if httpResp.StatusCode != http.StatusTooManyRequests {
			continue
		}
		limited++
		resp := decodeResponse(t, data)
		require.NotNil(t, resp.Error)
		assert.Equal(t, jsonrpc.ErrCodeRateLimited, resp.Error.Code)
	}
	assert.NotZero(t, limited)
}

func TestRestAndMetricsRoutes(t *testing.T) {
	params.SetConfig(params.NewDefaultConfig())
	t.Cleanup(func() { params.SetConfig(nil) })
	_, ts := newTestServer(t, nil)

	post(t, ts.URL, getEntries42)

	for _, path := range []string{"/serverinfo", "/versioninfo", "/health", "/metrics"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err, path)
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		if path == "/metrics" {
			assert.Contains(t, string(data), `entry_rpc_requests_total{code="0",method="getBlockEntries",transport="http"}`)
		}
	}
}

func TestStartAndShutdown(t *testing.T) {
	config := &params.NewDefaultConfig().APIServer
	config.BindAddr = "127.0.0.1"
	config.Port = 0
	router := jsonrpc.NewRouter(rpcapi.NewRegistry(), openTestLedger(t))
	s := NewServer(config, router)
	assert.Nil(t, s.Addr())
	require.NoError(t, s.Start())

	url := fmt.Sprintf("http://%v/", s.Addr())
	_, data := post(t, url, getEntries42)
	assert.Nil(t, decodeResponse(t, data).Error)

	wsURL := fmt.Sprintf("ws://%v/ws", s.Addr())
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(getEntries42)))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)

	require.NoError(t, s.Shutdown(context.Background()))
	_, err = http.Post(url, "application/json", strings.NewReader(getEntries42))
	assert.Error(t, err)
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebsocketRefusedWhileShuttingDown(t *testing.T) {
	s, ts := newTestServer(t, nil)
	require.NoError(t, s.Shutdown(context.Background()))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	assert.False(t, s.trackConn(&wsConn{}, true))
	s.mu.Lock()
	assert.Empty(t, s.wsConns)
	s.mu.Unlock()
}
