package config

import (
	"github.com/ymatsepa/banking-system/pkg/lib-core-golang/config"
	"github.com/ymatsepa/banking-system/pkg/version"
)

var appEnv = config.NewAppEnv(version.AppName)
var configBuilder = config.NewBuilder(appEnv)

var localParams = configBuilder.NewParamsBuilder(configBuilder.WithLocalSource())

// Do not change vars below at runtime
var (
	LogLevel = localParams.NewParam("log/logLevel").String()

	StorageDriver = localParams.NewParam("storage/driver").String()
	StorageDSN    = localParams.NewParam("storage/data-source-name").String()

	DefaultAccountType = localParams.NewParam("bank/default-account-type").String()
)

// Log represents logger specific options
type Log struct {
	Level config.StringVal
}

// Storage represents audit storage settings
type Storage struct {
	Driver config.StringVal
	DSN    config.StringVal
}

// Bank represents bank defaults
type Bank struct {
	DefaultAccountType config.StringVal
}

// AppConfig is a toplevel config structure
type AppConfig struct {
	Log     Log
	Storage Storage
	Bank    Bank
}

// LoadAppConfig will load and initialize app config structure
func LoadAppConfig() *AppConfig {
	cfg, err := configBuilder.LoadConfig()
	if err != nil {
		panic(err)
	}

	appCfg := AppConfig{
		Log: Log{
			Level: cfg.StringParam(LogLevel),
		},
		Storage: Storage{
			Driver: cfg.StringParam(StorageDriver),
			DSN:    cfg.StringParam(StorageDSN),
		},
		Bank: Bank{
			DefaultAccountType: cfg.StringParam(DefaultAccountType),
		},
	}

	return &appCfg
}
