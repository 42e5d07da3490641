package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"

	"github.com/xuperchain/xdapps/server/pb"
)

const dialTimeout = 5 * time.Second

// 连接节点控制面
func newControlClient(host string) (pb.DappsControlClient, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, host, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, nil, fmt.Errorf("grpc dial failed.host:%s,err:%v", host, err)
	}

	return pb.NewDappsControlClient(conn), func() { conn.Close() }, nil
}

func newReqHeader() *pb.ReqHeader {
	return &pb.ReqHeader{SelfName: CmdLineName}
}

// 响应头中的错误转换为命令行错误
func checkRespHeader(h *pb.RespHeader) error {
	if h == nil {
		return fmt.Errorf("empty response header")
	}
	if h.Error != 0 {
		return fmt.Errorf("request failed.code:%d,msg:%s,log_id:%s", h.Error, h.ErrMsg, h.LogId)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal failed.err:%v", err)
	}

	fmt.Fprintln(w, string(output))
	return nil
}
