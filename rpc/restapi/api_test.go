package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anyswap/BlockEntry-Service/internal/entryapi"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServerInfoHandler(t *testing.T) {
	params.SetConfig(nil)
	rec := serve(ServerInfoHandler, "/serverinfo")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	params.SetConfig(params.NewDefaultConfig())
	t.Cleanup(func() { params.SetConfig(nil) })

	rec = serve(ServerInfoHandler, "/serverinfo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var info entryapi.ServerInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, params.LevelDBBackend, info.LedgerBackend)
	assert.Equal(t, params.VersionWithMeta, info.Version)
}

func TestVersionAndHealthHandler(t *testing.T) {
	rec := serve(VersionInfoHandler, "/versioninfo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `"`+params.VersionWithMeta+`"`, rec.Body.String())

	rec = serve(HealthHandler, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
