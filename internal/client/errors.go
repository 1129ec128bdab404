// Package client 提供课件生成服务的客户端，管理单次生成请求的生命周期
package client

import (
	"errors"
	"fmt"
)

// ErrRequestInFlight 已有请求在进行中，本次提交被拒绝
var ErrRequestInFlight = errors.New("generation request already in flight")

// ValidationError 本地校验失败，不会发起网络请求
type ValidationError struct {
	Field  string
	Reason string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError 传输层失败（连接失败、DNS 解析失败、响应读取失败等）
type TransportError struct {
	Err error
}

// Error 实现 error 接口
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

// Unwrap 返回底层错误
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError 服务端返回非 2xx 状态码
type ServiceError struct {
	StatusCode int
	Message    string
}

// Error 实现 error 接口
func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service returned status %d", e.StatusCode)
}
