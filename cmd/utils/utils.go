// Package utils provides the shared flags and helpers of the commands.
package utils

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier string
	gitCommit        string
	gitDate          string
)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitcommit, gitdate, usage string) *cli.App {
	clientIdentifier = identifier
	gitCommit = gitcommit
	gitDate = gitdate
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	return app
}

// WaitForInterrupt blocks until SIGINT or SIGTERM is received
func WaitForInterrupt() os.Signal {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	sig := <-signalChan
	log.Info("receive signal, start graceful shutdown", "signal", sig)
	return sig
}
