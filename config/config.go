package config

import (
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/config"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/version"
)

var appEnv = config.NewAppEnv(version.AppName)
var configBuilder = config.NewBuilder(appEnv)

var localParams = configBuilder.NewParamsBuilder(configBuilder.WithLocalSource())

// Do not change vars below at runtime
var (
	LogLevel = localParams.NewParam("log/level").String()
	LogMode  = localParams.NewParam("log/mode").String()

	StorageDriver = localParams.NewParam("storage/driver").String()
	StorageDSN    = localParams.NewParam("storage/data-source-name").String()

	ServerPort = localParams.NewParam("server/port").Int()

	LedgerAPI = localParams.NewParam("ledger/api").String()

	EventsAMQPURL      = localParams.NewParam("events/amqp-url").String()
	EventsAMQPExchange = localParams.NewParam("events/amqp-exchange").String()
)

// Log represents logger specific options
type Log struct {
	Level config.StringVal
	Mode  config.StringVal
}

// Storage represents storage settings
type Storage struct {
	Driver config.StringVal
	DSN    config.StringVal
}

// Server represents web server settings
type Server struct {
	Port config.IntVal
}

// Ledger settings of a remote ledger api. Empty API means local mode
type Ledger struct {
	API config.StringVal
}

// Events represents ledger events publishing settings
type Events struct {
	AMQPURL      config.StringVal
	AMQPExchange config.StringVal
}

// AppConfig is a toplevel config structure
type AppConfig struct {
	Log     Log
	Storage Storage
	Server  Server
	Ledger  Ledger
	Events  Events
}

// Load will load and initialize config
func Load() config.ServiceConfig {
	cfg, err := configBuilder.LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewAppConfig builds app config structure from loaded config values
func NewAppConfig(cfg config.ServiceConfig) *AppConfig {
	return &AppConfig{
		Log: Log{
			Level: cfg.StringParam(LogLevel),
			Mode:  cfg.StringParam(LogMode),
		},
		Storage: Storage{
			Driver: cfg.StringParam(StorageDriver),
			DSN:    cfg.StringParam(StorageDSN),
		},
		Server: Server{
			Port: cfg.IntParam(ServerPort),
		},
		Ledger: Ledger{
			API: cfg.StringParam(LedgerAPI),
		},
		Events: Events{
			AMQPURL:      cfg.StringParam(EventsAMQPURL),
			AMQPExchange: cfg.StringParam(EventsAMQPExchange),
		},
	}
}

// LoadAppConfig will load and initialize app config structure
func LoadAppConfig() *AppConfig {
	return NewAppConfig(Load())
}
