package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/xuperchain/xdapps/server/pb"
)

type fakeClient struct {
	lastCall *pb.ContractCallReq
	errCode  int32
}

func (c *fakeClient) header() *pb.RespHeader {
	h := &pb.RespHeader{LogId: "log1", Error: c.errCode}
	if c.errCode != 0 {
		h.ErrMsg = "registrar not defined"
	}
	return h
}

func (c *fakeClient) ListDapps(ctx context.Context, in *pb.ListDappsReq,
	opts ...grpc.CallOption) (*pb.ListDappsResp, error) {
	return &pb.ListDappsResp{
		Header: c.header(),
		Dapps:  []*pb.DappInfo{{Id: "wallet", Name: "Wallet"}},
	}, nil
}

func (c *fakeClient) RegistrarAddress(ctx context.Context, in *pb.RegistrarAddressReq,
	opts ...grpc.CallOption) (*pb.RegistrarAddressResp, error) {
	return &pb.RegistrarAddressResp{
		Header:  c.header(),
		Address: "0x0000000000000000000000000000000000001234",
	}, nil
}

func (c *fakeClient) ContractCall(ctx context.Context, in *pb.ContractCallReq,
	opts ...grpc.CallOption) (*pb.ContractCallResp, error) {
	c.lastCall = in
	return &pb.ContractCallResp{Header: c.header(), Output: []byte{0xab, 0xcd}}, nil
}

func TestDappsList(t *testing.T) {
	var buf bytes.Buffer
	err := GetDappsListCmd().printDapps(context.Background(), &fakeClient{}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"id": "wallet"`)
}

func TestRegistrar(t *testing.T) {
	var buf bytes.Buffer
	err := GetRegistrarCmd().printRegistrar(nil, &fakeClient{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000001234", strings.TrimSpace(buf.String()))

	buf.Reset()
	err = GetRegistrarCmd().printRegistrar(context.Background(), &fakeClient{errCode: 40010}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code:40010")
	assert.Empty(t, buf.String())
}

func TestCall(t *testing.T) {
	cli := &fakeClient{}
	c := GetCallCmd()
	c.to = "0x0000000000000000000000000000000000001234"
	c.data = "0x3F1B"

	var buf bytes.Buffer
	require.NoError(t, c.call(context.Background(), cli, &buf))
	assert.Equal(t, "0xabcd", strings.TrimSpace(buf.String()))
	require.NotNil(t, cli.lastCall)
	assert.Equal(t, []byte{0x3f, 0x1b}, []byte(cli.lastCall.Data))
	assert.Equal(t, CmdLineName, cli.lastCall.Header.SelfName)

	c.data = "0xzz"
	assert.Error(t, c.call(context.Background(), cli, &buf))
}

func TestDecodeHex(t *testing.T) {
	b, err := decodeHex("")
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = decodeHex("0X0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := GetVersionCmd().GetCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	assert.Equal(t, "- \n", buf.String())
}
