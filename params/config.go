// Package params loads and holds the service configuration.
package params

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/anyswap/BlockEntry-Service/common"
	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/mongodb"
)

// ledger backends
const (
	LevelDBBackend = "leveldb"
	MongoDBBackend = "mongodb"
)

const (
	defaultIdentifier    = "block-entry-service"
	defaultLedgerPath    = "/solana/ledger"
	defaultLedgerCache   = 16
	defaultLedgerHandles = 16
	defaultBindAddr      = "0.0.0.0"
	defaultAPIPort       = 8080
)

var (
	entryConfig       *Config
	loadConfigStarter sync.Once
)

// Config config items (decode from toml file)
// Sections are values so a config file only overrides the items it sets.
type Config struct {
	Identifier string
	Ledger     LedgerConfig
	APIServer  APIServerConfig
}

// LedgerConfig ledger storage config
type LedgerConfig struct {
	Backend string
	Path    string `toml:",omitempty" json:",omitempty"`
	Cache   int    `toml:",omitempty" json:",omitempty"` // MiB
	Handles int    `toml:",omitempty" json:",omitempty"`

	MongoDB *mongodb.Config `toml:",omitempty" json:",omitempty"`
}

// APIServerConfig api service config
type APIServerConfig struct {
	BindAddr         string
	Port             int
	AllowedOrigins   []string
	MaxRequestsLimit int
	StrictErrorCodes bool
	EnableWebsocket  bool
}

// NewDefaultConfig returns the config used when no config file is given.
func NewDefaultConfig() *Config {
	return &Config{
		Identifier: defaultIdentifier,
		Ledger: LedgerConfig{
			Backend: LevelDBBackend,
			Path:    defaultLedgerPath,
			Cache:   defaultLedgerCache,
			Handles: defaultLedgerHandles,
		},
		APIServer: APIServerConfig{
			BindAddr:        defaultBindAddr,
			Port:            defaultAPIPort,
			EnableWebsocket: true,
		},
	}
}

// GetConfig get config items structure
func GetConfig() *Config {
	return entryConfig
}

// SetConfig set config items
func SetConfig(config *Config) {
	entryConfig = config
}

// ListenAddress returns the host:port the api server listens on
func (c *APIServerConfig) ListenAddress() string {
	return fmt.Sprintf("%v:%v", c.BindAddr, c.Port)
}

// ParseConfig decodes configFile over the defaults.
// An empty configFile yields the defaults.
func ParseConfig(configFile string) (*Config, error) {
	config := NewDefaultConfig()
	if configFile == "" {
		return config, nil
	}
	if !common.FileExist(configFile) {
		return nil, fmt.Errorf("config file %v not exist", configFile)
	}
	if _, err := toml.DecodeFile(configFile, config); err != nil {
		return nil, fmt.Errorf("toml DecodeFile: %w", err)
	}
	// relative ledger path is relative to the config file
	if config.Ledger.Path != "" {
		config.Ledger.Path = common.AbsolutePath(filepath.Dir(configFile), config.Ledger.Path)
	}
	return config, nil
}

// LoadConfig load config
func LoadConfig(configFile string) *Config {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Println("No config file specified, use default config")
		} else {
			log.Println("Config file is", configFile)
		}
		config, err := ParseConfig(configFile)
		if err != nil {
			log.Fatalf("LoadConfig error: %v", err)
		}
		SetConfig(config)
	})
	return entryConfig
}

// CheckAndLogConfig validates the config in use and logs it
func CheckAndLogConfig() {
	config := GetConfig()
	var bs []byte
	if log.JSONFormat {
		bs, _ = json.Marshal(config)
	} else {
		bs, _ = json.MarshalIndent(config, "", "  ")
	}
	log.Println("LoadConfig finished.", string(bs))
	if err := config.CheckConfig(); err != nil {
		log.Fatalf("Check config failed. %v", err)
	}
	log.Info("Check config success", "backend", config.Ledger.Backend)
}
