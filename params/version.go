package params

import (
	"fmt"
	"strings"
)

// Release of the entry service.
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
	VersionMeta  = "" // "stable" for release builds
)

const stableMeta = "stable"

// Version is the release as major.minor.patch.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// VersionWithMeta is Version with VersionMeta appended when set.
var VersionWithMeta = joinVersion(Version, VersionMeta)

// VersionWithCommit appends the short commit hash, and the commit date
// unless this is a stable build.
func VersionWithCommit(gitCommit, gitDate string) string {
	var shortCommit string
	if len(gitCommit) >= 8 {
		shortCommit = gitCommit[:8]
	}
	if VersionMeta == stableMeta {
		gitDate = ""
	}
	return joinVersion(VersionWithMeta, shortCommit, gitDate)
}

func joinVersion(parts ...string) string {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "-")
}
