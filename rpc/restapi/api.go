// Package restapi serves the plain http endpoints beside json-rpc.
package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/anyswap/BlockEntry-Service/internal/entryapi"
	"github.com/anyswap/BlockEntry-Service/log"
)

func writeResponse(w http.ResponseWriter, resp interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		resp = map[string]string{"error": err.Error()}
	}
	jsonData, _ := json.Marshal(resp)
	if _, err = w.Write(jsonData); err != nil {
		log.Warn("write rest response failed", "err", err)
	}
}

// ServerInfoHandler handler
func ServerInfoHandler(w http.ResponseWriter, r *http.Request) {
	res, err := entryapi.GetServerInfo()
	writeResponse(w, res, err)
}

// VersionInfoHandler handler
func VersionInfoHandler(w http.ResponseWriter, r *http.Request) {
	version := entryapi.GetVersionInfo()
	writeResponse(w, version, nil)
}

// HealthHandler handler
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, map[string]string{"status": "ok"}, nil)
}
