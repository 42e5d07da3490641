package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = ""
	commitHash   = ""
	buildDate    = ""
)

type versionCmd struct {
	BaseCmd
}

func GetVersionCmd() *versionCmd {
	versionCmdIns := new(versionCmd)

	versionCmdIns.cmd = &cobra.Command{
		Use:     "version",
		Short:   "View process version information.",
		Example: CmdLineName + " version",
		Run: func(cmd *cobra.Command, args []string) {
			Version(cmd.OutOrStdout())
		},
	}

	return versionCmdIns
}

func Version(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "%s-%s %s\n", buildVersion, commitHash, buildDate)
}
