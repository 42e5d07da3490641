package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"

	"github.com/xuperchain/xdapps/server/pb"
)

type CallCmd struct {
	BaseCmd
	host string
	to   string
	data string
}

func GetCallCmd() *CallCmd {
	callCmdIns := new(CallCmd)

	callCmdIns.cmd = &cobra.Command{
		Use:           "call",
		Short:         "read-only call of a contract against the latest block.",
		Example:       CmdLineName + " call --to 0x1234...abcd --data 0x3f1b2c4d",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, closer, err := newControlClient(callCmdIns.host)
			if err != nil {
				return err
			}
			defer closer()
			return callCmdIns.call(cmd.Context(), cli, cmd.OutOrStdout())
		},
	}
	callCmdIns.cmd.Flags().StringVarP(&callCmdIns.host, "host", "H", DefaultRpcHost, "node rpc address")
	callCmdIns.cmd.Flags().StringVar(&callCmdIns.to, "to", "", "contract address")
	callCmdIns.cmd.Flags().StringVar(&callCmdIns.data, "data", "", "hex encoded call data")

	return callCmdIns
}

func (t *CallCmd) call(ctx context.Context, cli pb.DappsControlClient, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := decodeHex(t.data)
	if err != nil {
		return fmt.Errorf("invalid call data.err:%v", err)
	}

	resp, err := cli.ContractCall(ctx, &pb.ContractCallReq{
		Header: newReqHeader(),
		To:     t.to,
		Data:   data,
	})
	if err != nil {
		return err
	}
	if err := checkRespHeader(resp.Header); err != nil {
		return err
	}

	fmt.Fprintln(w, "0x"+hex.EncodeToString(resp.Output))
	return nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
