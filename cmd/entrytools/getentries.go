package main

import (
	"encoding/json"
	"fmt"

	"github.com/anyswap/BlockEntry-Service/rpc/client"
	"github.com/urfave/cli/v2"
)

var (
	serverFlag = &cli.StringSliceFlag{
		Name:  "server",
		Usage: "entry service url, repeat to try more servers in order",
		Value: cli.NewStringSlice("http://127.0.0.1:8080"),
	}
	slotFlag = &cli.Uint64Flag{
		Name:     "slot",
		Usage:    "slot number",
		Required: true,
	}
	idFlag = &cli.StringFlag{
		Name:  "id",
		Usage: "json-rpc request id",
		Value: "1",
	}

	getEntriesCommand = &cli.Command{
		Action:    getEntries,
		Name:      "getentries",
		Usage:     "get block entries of a slot",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			serverFlag,
			slotFlag,
			idFlag,
		},
	}

	serverInfoCommand = &cli.Command{
		Action:    serverInfo,
		Name:      "serverinfo",
		Usage:     "get server info",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			serverFlag,
		},
	}
)

func getEntries(ctx *cli.Context) error {
	entries, err := client.GetBlockEntriesFrom(ctx.StringSlice(serverFlag.Name), ctx.Uint64(slotFlag.Name), ctx.String(idFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(entries)
}

func serverInfo(ctx *cli.Context) error {
	info, err := client.GetServerInfo(ctx.StringSlice(serverFlag.Name)[0])
	if err != nil {
		return err
	}
	return printJSON(info)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
