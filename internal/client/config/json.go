package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/stgmsg/internal/flagx"
	"github.com/dmitrijs2005/stgmsg/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	BrowseTimeout      timex.Duration `json:"browse_timeout"`
	SharedSecret       string         `json:"shared_secret"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flags via flagx.JsonConfigFlags; if
// neither is set, nothing is loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.BrowseTimeout = time.Duration(jc.BrowseTimeout.Duration)
	cfg.SharedSecret = jc.SharedSecret
}
