package rpc

import (
	"context"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/kernel/dapps"
	"github.com/xuperchain/xdapps/kernel/registrar"
	sctx "github.com/xuperchain/xdapps/server/context"
	"github.com/xuperchain/xdapps/server/pb"
)

// 查询已安装的dapp
func (t *RpcServ) ListDapps(gctx context.Context, req *pb.ListDappsReq) (*pb.ListDappsResp, error) {
	// 默认响应
	resp := &pb.ListDappsResp{Header: t.defRespHeader(req.GetHeader())}

	// 获取请求上下文，对内传递rctx
	rctx := sctx.ValueReqCtx(gctx)

	resp.Dapps = toDappInfos(t.svc.ListDapps())
	rctx.GetLog().SetInfoField("dapps", len(resp.Dapps))

	// 设置成功响应
	t.setRespError(resp.Header, nil)
	return resp, nil
}

// 查询registrar合约地址
func (t *RpcServ) RegistrarAddress(gctx context.Context,
	req *pb.RegistrarAddressReq) (*pb.RegistrarAddressResp, error) {
	// 默认响应
	resp := &pb.RegistrarAddressResp{Header: t.defRespHeader(req.GetHeader())}
	rctx := sctx.ValueReqCtx(gctx)

	addr, err := t.svc.RegistrarAddress()
	if err != nil {
		rctx.GetLog().Warn("get registrar address failed", "err", err)
		t.setRespError(resp.Header, err)
		return resp, nil
	}

	resp.Address = addr.Hex()
	t.setRespError(resp.Header, nil)
	return resp, nil
}

// 只读合约调用
func (t *RpcServ) ContractCall(gctx context.Context, req *pb.ContractCallReq) (*pb.ContractCallResp, error) {
	// 默认响应
	resp := &pb.ContractCallResp{Header: t.defRespHeader(req.GetHeader())}
	rctx := sctx.ValueReqCtx(gctx)

	to, err := registrar.ParseAddress(req.GetTo())
	if err != nil {
		t.setRespError(resp.Header, xcom.ErrParameter.More("%v", err))
		return resp, nil
	}

	out, err := t.svc.ContractCall(to, req.GetData())
	if err != nil {
		rctx.GetLog().Warn("contract call failed", "to", req.GetTo(), "err", err)
		t.setRespError(resp.Header, err)
		return resp, nil
	}
	rctx.GetLog().SetInfoField("output_size", len(out))

	resp.Output = out
	t.setRespError(resp.Header, nil)
	return resp, nil
}

func toDappInfos(list []dapps.LocalDapp) []*pb.DappInfo {
	infos := make([]*pb.DappInfo, 0, len(list))
	for _, d := range list {
		infos = append(infos, &pb.DappInfo{
			Id:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Version:     d.Version,
			Author:      d.Author,
			IconUrl:     d.IconURL,
		})
	}
	return infos
}
