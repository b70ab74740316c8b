package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/worklog/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys leave
// the corresponding setting untouched.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	SessionDBPath      *string         `json:"session_db_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

func readJson(path string) (*JsonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &jc, nil
}

// apply copies present keys into cfg unless pinned reports that the
// matching flag was given on the command line.
func (jc *JsonConfig) apply(cfg *Config, pinned func(flag string) bool) {
	if jc.ServerEndpointAddr != nil && !pinned(flagServer) {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.SessionDBPath != nil && !pinned(flagSessionDB) {
		cfg.SessionDBPath = *jc.SessionDBPath
	}
	if jc.RequestTimeout != nil && !pinned(flagTimeout) {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
