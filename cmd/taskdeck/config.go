// Config loading for the taskdeck server. Precedence: flags > environment
// (TASKDECK_*) > config.yaml > defaults.
package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dukaforge/taskdeck/internal/paths"
	"github.com/dukaforge/taskdeck/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyListenAddr  = "listen_addr"
	cfgKeyDataDir     = "data_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyCORSOrigins = "cors_origins"
)

// loadConfig resolves the config directory, reads config.yaml if present,
// and applies flag and environment overrides. A missing config.yaml is not
// an error.
func loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyListenAddr, ":8080")
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyCORSOrigins, []string{"*"})
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("TASKDECK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		ListenAddr:  v.GetString(cfgKeyListenAddr),
		DataDir:     dataDir,
		LogLevel:    v.GetString(cfgKeyLogLevel),
		CORSOrigins: v.GetStringSlice(cfgKeyCORSOrigins),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
