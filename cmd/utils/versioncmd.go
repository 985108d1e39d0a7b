package utils

import (
	"fmt"
	"runtime"

	"github.com/anyswap/BlockEntry-Service/params"
	"github.com/urfave/cli/v2"
)

// VersionCommand prints the build of the running binary.
var VersionCommand = &cli.Command{
	Action:    printVersion,
	Name:      "version",
	Usage:     "print release, commit and go runtime of this binary",
	ArgsUsage: " ",
}

// versionInfo lists the build details as name and value pairs.
func versionInfo() [][2]string {
	info := [][2]string{
		{"Identifier", clientIdentifier},
		{"Version", params.VersionWithMeta},
	}
	if gitCommit != "" {
		info = append(info, [2]string{"Git Commit", gitCommit})
	}
	if gitDate != "" {
		info = append(info, [2]string{"Git Commit Date", gitDate})
	}
	return append(info,
		[2]string{"Go Version", runtime.Version()},
		[2]string{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	)
}

func printVersion(ctx *cli.Context) error {
	for _, kv := range versionInfo() {
		fmt.Printf("%s: %s\n", kv[0], kv[1])
	}
	return nil
}
