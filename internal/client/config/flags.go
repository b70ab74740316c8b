package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/flagx"
	"github.com/spf13/pflag"
)

const (
	flagConfig    = "config"
	flagServer    = "server"
	flagSessionDB = "session-db"
	flagTimeout   = "timeout"
)

// RegisterFlags binds c to persistent CLI flags. Current field values
// become the flag defaults, so call LoadDefaults first.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ConfigFile, flagConfig, "c", c.ConfigFile, "path to JSON config file")
	fs.StringVarP(&c.ServerEndpointAddr, flagServer, "a", c.ServerEndpointAddr, "address and port of the worklog server")
	fs.StringVar(&c.SessionDBPath, flagSessionDB, c.SessionDBPath, "path of the local session database")
	fs.DurationVarP(&c.RequestTimeout, flagTimeout, "t", c.RequestTimeout, "per-request timeout")
}

// Resolve overlays the JSON file onto every setting whose flag was not set
// explicitly, then validates the result.
func (c *Config) Resolve(fs *pflag.FlagSet) error {
	path := c.ConfigFile
	if path == "" {
		path = strings.TrimSpace(os.Getenv(flagx.ConfigEnvVar))
	}
	if path != "" {
		jc, err := readJson(path)
		if err != nil {
			return err
		}
		jc.apply(c, func(name string) bool {
			f := fs.Lookup(name)
			return f != nil && f.Changed
		})
	}
	return c.Validate()
}
