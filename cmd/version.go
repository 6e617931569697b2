package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// describeVersion annotates a build version: development builds, release
// candidates and malformed tags are called out.
func describeVersion(v string) string {
	if v == "(devel)" || v == "" {
		return "(devel)"
	}
	canon := v
	if !semver.IsValid(canon) {
		canon = "v" + v
	}
	if !semver.IsValid(canon) {
		return v + " (unrecognised version)"
	}
	if semver.Prerelease(canon) != "" {
		return canon + " (pre-release)"
	}
	return canon
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "tradepath", describeVersion(version))
	},
}
