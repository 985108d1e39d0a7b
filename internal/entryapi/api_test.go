package entryapi

import (
	"testing"

	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServerInfo(t *testing.T) {
	params.SetConfig(nil)
	_, err := GetServerInfo()
	assert.Error(t, err)

	config := params.NewDefaultConfig()
	config.Identifier = "entries"
	config.APIServer.StrictErrorCodes = true
	params.SetConfig(config)
	t.Cleanup(func() { params.SetConfig(nil) })

	info, err := GetServerInfo()
	require.NoError(t, err)
	assert.Equal(t, &ServerInfo{
		Identifier:       "entries",
		LedgerBackend:    params.LevelDBBackend,
		StrictErrorCodes: true,
		Version:          params.VersionWithMeta,
	}, info)
	assert.Equal(t, params.VersionWithMeta, GetVersionInfo())
}
