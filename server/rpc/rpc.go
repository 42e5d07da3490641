package rpc

import (
	"context"
	"fmt"
	"net"
	"reflect"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"

	xcom "github.com/xuperchain/xdapps/kernel/common"
	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/metrics"
	"github.com/xuperchain/xdapps/lib/utils"
	sctx "github.com/xuperchain/xdapps/server/context"
	"github.com/xuperchain/xdapps/server/pb"
	"github.com/xuperchain/xdapps/server/service"
)

const SubModName = "rpc"

type RpcServ struct {
	svc *service.Service
	log logs.Logger
}

func NewRpcServ(svc *service.Service, log logs.Logger) *RpcServ {
	return &RpcServ{
		svc: svc,
		log: log,
	}
}

// UnaryInterceptor provides a hook to intercept the execution of a unary RPC on the server.
func (t *RpcServ) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		// set request header
		type HeaderInterface interface {
			GetHeader() *pb.ReqHeader
		}
		hreq, ok := req.(HeaderInterface)
		if !ok {
			return handler(ctx, req)
		}
		if hreq.GetHeader() == nil {
			header := reflect.ValueOf(req).Elem().FieldByName("Header")
			if header.IsValid() && header.CanSet() {
				header.Set(reflect.ValueOf(t.defReqHeader()))
			}
		}
		reqHeader := hreq.GetHeader()
		if reqHeader == nil {
			return handler(ctx, req)
		}
		if reqHeader.GetLogId() == "" {
			reqHeader.LogId = utils.GenLogId()
		}

		// set request context
		reqCtx, err := t.createReqCtx(ctx, reqHeader)
		if err != nil {
			return nil, err
		}
		ctx = sctx.WithReqCtx(ctx, reqCtx)

		// output access log
		logFields := make([]interface{}, 0)
		logFields = append(logFields, "from", reqHeader.SelfName,
			"client_ip", reqCtx.GetClientIp(), "rpc_method", info.FullMethod)
		reqCtx.GetLog().Trace("access request", logFields...)

		// handle request
		// 错误统一通过resp header中的错误码返回
		resp, err := handler(ctx, req)
		if err != nil {
			return resp, err
		}

		type RespHeaderInterface interface {
			GetHeader() *pb.RespHeader
		}
		var code int32
		if hresp, ok := resp.(RespHeaderInterface); ok {
			code = hresp.GetHeader().GetError()
		}
		metrics.CallMethodCounter.WithLabelValues(info.FullMethod, strconv.Itoa(int(code))).Inc()
		metrics.CallMethodHistogram.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())

		// output ending log
		logFields = append(logFields, "error", code, "cost_time", reqCtx.GetTimer().Print())
		reqCtx.GetLog().Info("request done", logFields...)

		return resp, nil
	}
}

func (t *RpcServ) defReqHeader() *pb.ReqHeader {
	return &pb.ReqHeader{
		LogId:    utils.GenLogId(),
		SelfName: "unknow",
	}
}

func (t *RpcServ) defRespHeader(rHeader *pb.ReqHeader) *pb.RespHeader {
	return &pb.RespHeader{
		LogId:   rHeader.GetLogId(),
		Error:   int32(xcom.ErrUnknown.Code),
		TraceId: utils.GetHostName(),
	}
}

// 设置响应错误，nil表示成功
func (t *RpcServ) setRespError(h *pb.RespHeader, err error) {
	if err == nil {
		h.Error = int32(xcom.ErrSuccess.Code)
		h.ErrMsg = ""
		return
	}

	e := xcom.CastError(err)
	h.Error = int32(e.Code)
	h.ErrMsg = e.Msg
}

func (t *RpcServ) createReqCtx(gctx context.Context, reqHeader *pb.ReqHeader) (sctx.ReqCtx, error) {
	// 获取客户端ip，获取失败不影响请求处理
	clientIp, err := t.getClietIP(gctx)
	if err != nil {
		t.log.Warn("get client ip failed", "error", err)
	}

	// 创建请求上下文
	rctx, err := sctx.NewReqCtx(reqHeader.LogId, clientIp)
	if err != nil {
		t.log.Error("access proc failed because create request context failed", "error", err)
		return nil, fmt.Errorf("create request context failed")
	}

	return rctx, nil
}

func (t *RpcServ) getClietIP(gctx context.Context) (string, error) {
	pr, ok := peer.FromContext(gctx)
	if !ok {
		return "", fmt.Errorf("create peer form context failed")
	}

	if pr.Addr == nil || pr.Addr == net.Addr(nil) {
		return "", fmt.Errorf("get client_ip failed because peer.Addr is nil")
	}

	host, _, err := net.SplitHostPort(pr.Addr.String())
	if err != nil {
		return pr.Addr.String(), nil
	}
	return host, nil
}
