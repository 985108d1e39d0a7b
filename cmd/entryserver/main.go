package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/anyswap/BlockEntry-Service/cmd/utils"
	"github.com/anyswap/BlockEntry-Service/ledger"
	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/mongodb"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/anyswap/BlockEntry-Service/rpc/jsonrpc"
	"github.com/anyswap/BlockEntry-Service/rpc/rpcapi"
	rpcserver "github.com/anyswap/BlockEntry-Service/rpc/server"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "entryserver"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the block entry json-rpc server")
)

func initApp() {
	// Initialize the CLI app and start action
	app.Action = entryserver
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.BackendFlag,
		utils.LedgerPathFlag,
		utils.BindAddrFlag,
		utils.PortFlag,
		utils.StrictErrorCodesFlag,
		utils.LogFileFlag,
		utils.LogRotationFlag,
		utils.LogMaxAgeFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func entryserver(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	config := params.LoadConfig(utils.GetConfigFilePath(ctx))
	utils.ApplyConfigFlags(ctx, config)
	params.CheckAndLogConfig()

	reader, closeLedger := openLedger(&config.Ledger)
	defer closeLedger()

	apiConfig := &config.APIServer
	router := jsonrpc.NewRouter(rpcapi.NewRegistry(), reader, jsonrpc.WithStrictErrorCodes(apiConfig.StrictErrorCodes))
	server := rpcserver.NewServer(apiConfig, router)
	if err := server.Start(); err != nil {
		log.Fatalf("start api server failed: %v", err)
	}

	utils.WaitForInterrupt()
	if err := server.ShutdownWithTimeout(); err != nil {
		log.Warn("api server shutdown failed", "err", err)
	}
	log.Info("entryserver stopped")
	return nil
}

// openLedger attaches to the ledger read-only, any failure is fatal.
func openLedger(config *params.LedgerConfig) (reader ledger.Reader, closeFn func()) {
	switch config.Backend {
	case params.MongoDBBackend:
		store, err := mongodb.Open(context.Background(), config.MongoDB)
		if err != nil {
			log.Fatalf("open mongodb ledger failed: %v", err)
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				log.Warn("close mongodb ledger failed", "err", err)
			}
		}
	default:
		blockstore, err := ledger.OpenBlockstore(config.Path, config.Cache, config.Handles)
		if err != nil {
			log.Fatalf("open leveldb ledger failed: %v", err)
		}
		log.Info("open leveldb ledger success", "path", config.Path)
		return blockstore, func() {
			if err := blockstore.Close(); err != nil {
				log.Warn("close leveldb ledger failed", "err", err)
			}
		}
	}
}
