package context

import (
	"context"
	"fmt"

	"github.com/xuperchain/xdapps/lib/logs"
	"github.com/xuperchain/xdapps/lib/timer"
)

const SubModName = "server"

// 请求级别上下文
type ReqCtx interface {
	GetLog() logs.Logger
	GetTimer() *timer.XTimer
	GetClientIp() string
}

type ReqCtxImpl struct {
	log      logs.Logger
	timer    *timer.XTimer
	clientIp string
}

func NewReqCtx(reqId, clientIp string) (ReqCtx, error) {
	log, err := logs.NewLogger(reqId, SubModName)
	if err != nil {
		return nil, fmt.Errorf("new request context failed because new logger failed.err:%s", err)
	}

	ctx := &ReqCtxImpl{
		log:      log,
		timer:    timer.NewXTimer(),
		clientIp: clientIp,
	}

	return ctx, nil
}

func (t *ReqCtxImpl) GetLog() logs.Logger {
	return t.log
}

func (t *ReqCtxImpl) GetTimer() *timer.XTimer {
	return t.timer
}

func (t *ReqCtxImpl) GetClientIp() string {
	return t.clientIp
}

type reqCtxKey struct{}

func WithReqCtx(ctx context.Context, rctx ReqCtx) context.Context {
	return context.WithValue(ctx, reqCtxKey{}, rctx)
}

// ValueReqCtx returns the request context, or a fresh one when ctx carries none
func ValueReqCtx(ctx context.Context) ReqCtx {
	if rctx, ok := ctx.Value(reqCtxKey{}).(ReqCtx); ok && rctx != nil {
		return rctx
	}

	rctx, _ := NewReqCtx("", "")
	return rctx
}
