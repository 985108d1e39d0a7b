package params

import (
	"errors"
	"fmt"
	"net"
)

// CheckConfig check config
func (c *Config) CheckConfig() (err error) {
	if c.Identifier == "" {
		return errors.New("server must config non empty 'Identifier'")
	}
	err = c.Ledger.CheckConfig()
	if err != nil {
		return err
	}
	return c.APIServer.CheckConfig()
}

// CheckConfig check ledger config
func (c *LedgerConfig) CheckConfig() error {
	switch c.Backend {
	case LevelDBBackend:
		if c.Path == "" {
			return errors.New("leveldb ledger must config non empty 'Path'")
		}
		if c.Cache < 0 || c.Handles < 0 {
			return errors.New("ledger 'Cache' and 'Handles' must not be negative")
		}
	case MongoDBBackend:
		if c.MongoDB == nil {
			return errors.New("mongodb ledger must config 'Ledger.MongoDB'")
		}
		if c.MongoDB.DBURL == "" {
			return errors.New("mongodb ledger must config non empty 'DBURL'")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("mongodb ledger must config non empty 'DBName'")
		}
	default:
		return fmt.Errorf("unknown ledger backend '%v'", c.Backend)
	}
	return nil
}

// CheckConfig check api server config
func (c *APIServerConfig) CheckConfig() error {
	if net.ParseIP(c.BindAddr) == nil {
		return fmt.Errorf("Invalid bind address '%v'", c.BindAddr)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("wrong api server port %v", c.Port)
	}
	if c.MaxRequestsLimit < 0 {
		return errors.New("'MaxRequestsLimit' must not be negative")
	}
	return nil
}
