package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode int

const (
	ErrMalformedRequest ErrorCode = iota + 1
	ErrMethodNotAllowed
	ErrRouteNotFound
	ErrCounterOverflow
	ErrIO
)

func (c ErrorCode) String() string {
	switch c {
	case ErrMalformedRequest:
		return "malformed request"
	case ErrMethodNotAllowed:
		return "method not allowed"
	case ErrRouteNotFound:
		return "route not found"
	case ErrCounterOverflow:
		return "counter overflow"
	case ErrIO:
		return "i/o failure"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// HTTPStatus 返回错误码对应的响应状态码，I/O 错误不产生响应，返回 0
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrMalformedRequest:
		return 400
	case ErrMethodNotAllowed:
		return 405
	case ErrRouteNotFound:
		return 404
	case ErrCounterOverflow:
		return 500
	default:
		return 0
	}
}

type ProtocolError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is(err, ErrOverflow) 这类判断
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// 哨兵错误
var (
	ErrMalformed  = &ProtocolError{Code: ErrMalformedRequest}
	ErrNotAllowed = &ProtocolError{Code: ErrMethodNotAllowed}
	ErrNotFound   = &ProtocolError{Code: ErrRouteNotFound}
	ErrOverflow   = &ProtocolError{Code: ErrCounterOverflow}
	ErrConnection = &ProtocolError{Code: ErrIO}
)

func New(code ErrorCode, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code ErrorCode, err error, message string) *ProtocolError {
	return &ProtocolError{Code: code, Message: message, Err: err}
}

// CodeOf 取出错误链中第一个 ProtocolError 的错误码，没有则返回 0
func CodeOf(err error) ErrorCode {
	var pe *ProtocolError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return 0
}
