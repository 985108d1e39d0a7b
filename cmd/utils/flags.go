package utils

import (
	"github.com/anyswap/BlockEntry-Service/log"
	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/urfave/cli/v2"
)

var (
	// ConfigFileFlag --config
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Specify config file",
	}
	// LedgerPathFlag --ledger-path
	LedgerPathFlag = &cli.StringFlag{
		Name:  "ledger-path",
		Usage: "Specify leveldb ledger directory (overrides config)",
	}
	// BackendFlag --backend
	BackendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Specify ledger backend, 'leveldb' or 'mongodb' (overrides config)",
	}
	// BindAddrFlag --bind-addr
	BindAddrFlag = &cli.StringFlag{
		Name:  "bind-addr",
		Usage: "Specify api server bind address (overrides config)",
	}
	// PortFlag --port
	PortFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Specify api server port (overrides config)",
	}
	// StrictErrorCodesFlag --strict-error-codes
	StrictErrorCodesFlag = &cli.BoolFlag{
		Name:  "strict-error-codes",
		Usage: "Report unknown methods as -32601 and bad params as -32602",
	}
	// LogFileFlag --log
	LogFileFlag = &cli.StringFlag{
		Name:  "log",
		Usage: "Specify log file, support rotate",
	}
	// LogRotationFlag --log.rotate
	LogRotationFlag = &cli.Uint64Flag{
		Name:  "log.rotate",
		Usage: "log rotation time (unit hour)",
		Value: 24,
	}
	// LogMaxAgeFlag --log.maxage
	LogMaxAgeFlag = &cli.Uint64Flag{
		Name:  "log.maxage",
		Usage: "log max age (unit hour)",
		Value: 7200,
	}
	// VerbosityFlag --verbosity
	VerbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value:   4,
	}
	// JSONFormatFlag --json
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	// ColorFormatFlag --color
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
)

// SetLogger set log level, json format, color, rotate ...
func SetLogger(ctx *cli.Context) {
	logLevel := ctx.Uint64(VerbosityFlag.Name)
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(uint32(logLevel), jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile != "" {
		logRotation := ctx.Uint64(LogRotationFlag.Name)
		logMaxAge := ctx.Uint64(LogMaxAgeFlag.Name)
		if err := log.SetLogFile(logFile, logRotation, logMaxAge); err != nil {
			log.Fatalf("set log file failed: %v", err)
		}
	}
}

// GetConfigFilePath specified by `-c|--config`
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}

// ApplyConfigFlags overrides config items with the flags that are set
func ApplyConfigFlags(ctx *cli.Context, config *params.Config) {
	if ctx.IsSet(BackendFlag.Name) {
		config.Ledger.Backend = ctx.String(BackendFlag.Name)
	}
	if ctx.IsSet(LedgerPathFlag.Name) {
		config.Ledger.Path = ctx.String(LedgerPathFlag.Name)
	}
	if ctx.IsSet(BindAddrFlag.Name) {
		config.APIServer.BindAddr = ctx.String(BindAddrFlag.Name)
	}
	if ctx.IsSet(PortFlag.Name) {
		config.APIServer.Port = ctx.Int(PortFlag.Name)
	}
	if ctx.IsSet(StrictErrorCodesFlag.Name) {
		config.APIServer.StrictErrorCodes = ctx.Bool(StrictErrorCodesFlag.Name)
	}
}
