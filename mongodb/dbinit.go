// Package mongodb reads a ledger that a writer process keeps in mongodb.
package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anyswap/BlockEntry-Service/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Config mongodb connection config
type Config struct {
	DBURL    string
	DBName   string
	UserName string `json:"-"`
	Password string `json:"-"`
}

// GetURL get mongodb connection uri
func (cfg *Config) GetURL() string {
	if strings.HasPrefix(cfg.DBURL, "mongodb://") || strings.HasPrefix(cfg.DBURL, "mongodb+srv://") {
		return cfg.DBURL
	}
	return "mongodb://" + cfg.DBURL
}

// Store is a read-only ledger kept in mongodb.
type Store struct {
	client *mongo.Client
	colls  ledgerCollections
}

// Open connects to mongodb. Reads prefer secondaries, the store never writes.
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.GetURL()).
		SetConnectTimeout(connectTimeout).
		SetReadPreference(readpref.SecondaryPreferred())
	if cfg.UserName != "" || cfg.Password != "" {
		clientOpts.SetAuth(options.Credential{
			AuthSource: cfg.DBName,
			Username:   cfg.UserName,
			Password:   cfg.Password,
		})
	}

	log.Info("[mongodb] connect database start.", "url", cfg.DBURL, "dbName", cfg.DBName)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[mongodb] connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.SecondaryPreferred()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("[mongodb] ping: %w", err)
	}

	store := newStore(client, cfg.DBName)
	log.Info("[mongodb] connect database finished.", "dbName", cfg.DBName)
	return store, nil
}

func newStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		client: client,
		colls: &mgoCollections{
			slotMetas: database.Collection(tbSlotMetas),
			entries:   database.Collection(tbEntries),
		},
	}
}

// Close disconnects from mongodb.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
