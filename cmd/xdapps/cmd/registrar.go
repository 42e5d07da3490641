package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xdapps/server/pb"
)

type RegistrarCmd struct {
	BaseCmd
	host string
}

func GetRegistrarCmd() *RegistrarCmd {
	regCmdIns := new(RegistrarCmd)

	regCmdIns.cmd = &cobra.Command{
		Use:           "registrar",
		Short:         "print registrar contract address.",
		Example:       CmdLineName + " registrar --host 127.0.0.1:38101",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, closer, err := newControlClient(regCmdIns.host)
			if err != nil {
				return err
			}
			defer closer()
			return regCmdIns.printRegistrar(cmd.Context(), cli, cmd.OutOrStdout())
		},
	}
	regCmdIns.cmd.Flags().StringVarP(&regCmdIns.host, "host", "H", DefaultRpcHost, "node rpc address")

	return regCmdIns
}

func (t *RegistrarCmd) printRegistrar(ctx context.Context, cli pb.DappsControlClient, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := cli.RegistrarAddress(ctx, &pb.RegistrarAddressReq{Header: newReqHeader()})
	if err != nil {
		return err
	}
	if err := checkRespHeader(resp.Header); err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Address)
	return nil
}
