package xdns

import "errors"

var (
	// ErrEmptyServer 表示未指定 DNS 服务器。
	ErrEmptyServer = errors.New("xdns: empty server address")
	// ErrInvalidNet 表示传输协议不是 udp 或 tcp。
	ErrInvalidNet = errors.New("xdns: net must be udp or tcp")
	// ErrServerFailure 表示服务器返回了 NOERROR 和 NXDOMAIN 以外的响应码。
	ErrServerFailure = errors.New("xdns: server failure")
)
