package types

import "errors"

// Config holds server parameters resolved from the config file, environment,
// and defaults.
type Config struct {
	ListenAddr  string   `json:"listen_addr" yaml:"listen_addr"`
	DataDir     string   `json:"data_dir" yaml:"data_dir"`
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`
}

// Config validation errors.
var (
	ErrListenAddrEmpty = errors.New("listen_addr must not be empty")
	ErrDataDirEmpty    = errors.New("data_dir must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrEmpty
	}
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
