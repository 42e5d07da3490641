package common

import (
	"fmt"
)

const (
	// 处理成功类
	ErrStatusSucc = 200
	// 拒绝处理类错误状态
	ErrStatusRefused = 400
	// 内部错误类错误状态
	ErrStatusInternalErr = 500
)

type Error struct {
	// 用于统计和监控的错误分类（类似http的2xx、4xx、5xx）
	Status int
	// 用于标识具体错误的详细错误码
	Code int
	// 用于说明具体错误的说明信息
	Msg string
}

func CastError(err error) *Error {
	return CastErrorDefault(err, ErrUnknown)
}

func CastErrorDefault(err error, defaultErr *Error) *Error {
	if err == nil {
		return nil
	}
	if defErr, ok := err.(*Error); ok {
		return defErr
	}

	return defaultErr.More("%s", err.Error())
}

func (t *Error) Error() string {
	return fmt.Sprintf("Err:%d-%d-%s", t.Status, t.Code, t.Msg)
}

// More returns a copy of the error with extra detail appended to Msg
func (t *Error) More(format string, args ...interface{}) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{t.Status, t.Code, t.Msg + "+" + msg}
}

func (t *Error) Equal(rhs *Error) bool {
	if rhs == nil {
		return false
	}

	return t.Code == rhs.Code
}

// Is lets errors.Is match errors derived by More
func (t *Error) Is(target error) bool {
	rhs, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Equal(rhs)
}

// define std error
var (
	ErrSuccess      = &Error{ErrStatusSucc, 0, "success"}
	ErrInternal     = &Error{ErrStatusInternalErr, 50000, "internal error"}
	ErrUnknown      = &Error{ErrStatusInternalErr, 50001, "unknown error"}
	ErrForbidden    = &Error{ErrStatusRefused, 40300, "forbidden"}
	ErrUnauthorized = &Error{ErrStatusRefused, 40100, "unauthorized"}
	ErrParameter    = &Error{ErrStatusRefused, 40001, "param error"}
	ErrNotFound     = &Error{ErrStatusRefused, 40400, "not found"}

	// registrar
	ErrNotConfigured   = &Error{ErrStatusRefused, 40010, "registrar not defined"}
	ErrInvalidAddress  = &Error{ErrStatusRefused, 40011, "invalid registrar address"}
	ErrExecutionFailed = &Error{ErrStatusInternalErr, 50010, "contract call failed"}

	// middleware
	ErrBuildFailed = &Error{ErrStatusInternalErr, 50020, "build middleware failed"}

	// chain
	ErrLoadChainFailed = &Error{ErrStatusInternalErr, 50030, "load chain failed"}
	ErrUnknownBlock    = &Error{ErrStatusRefused, 40030, "unknown block"}

	// fetch
	ErrFetchFailed   = &Error{ErrStatusInternalErr, 50040, "fetch content failed"}
	ErrFetchTooLarge = &Error{ErrStatusRefused, 40040, "fetched content too large"}
	ErrHintNotFound  = &Error{ErrStatusRefused, 40041, "url hint not found"}
)
