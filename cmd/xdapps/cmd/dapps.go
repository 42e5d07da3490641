package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xdapps/server/pb"
)

type DappsCmd struct {
	BaseCmd
}

func GetDappsCmd() *DappsCmd {
	dappsCmdIns := new(DappsCmd)

	dappsCmdIns.cmd = &cobra.Command{
		Use:           "dapps",
		Short:         "query installed dapps.",
		Example:       CmdLineName + " dapps list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// list dapps
	dappsCmdIns.cmd.AddCommand(GetDappsListCmd().GetCmd())

	return dappsCmdIns
}

type DappsListCmd struct {
	BaseCmd
	host string
}

func GetDappsListCmd() *DappsListCmd {
	listCmdIns := new(DappsListCmd)

	listCmdIns.cmd = &cobra.Command{
		Use:           "list",
		Short:         "print installed dapps.",
		Example:       CmdLineName + " dapps list --host 127.0.0.1:38101",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, closer, err := newControlClient(listCmdIns.host)
			if err != nil {
				return err
			}
			defer closer()
			return listCmdIns.printDapps(cmd.Context(), cli, cmd.OutOrStdout())
		},
	}
	listCmdIns.cmd.Flags().StringVarP(&listCmdIns.host, "host", "H", DefaultRpcHost, "node rpc address")

	return listCmdIns
}

func (t *DappsListCmd) printDapps(ctx context.Context, cli pb.DappsControlClient, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := cli.ListDapps(ctx, &pb.ListDappsReq{Header: newReqHeader()})
	if err != nil {
		return err
	}
	if err := checkRespHeader(resp.Header); err != nil {
		return err
	}

	return printJSON(w, resp.Dapps)
}
