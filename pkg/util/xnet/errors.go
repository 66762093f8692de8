package xnet

import "errors"

var (
	// ErrInvalidAddress 表示文本既不是合法的 IP 字面量，也无法解析为地址。
	ErrInvalidAddress = errors.New("xnet: invalid IP address")

	// ErrInvalidRange 表示无效的 IP 范围格式。
	ErrInvalidRange = errors.New("xnet: invalid IP range")

	// ErrInvalidVersion 表示无效的 IP 版本。
	ErrInvalidVersion = errors.New("xnet: invalid IP version")

	// ErrRange 表示整数为负数，或超出请求/推断地址族的可表示位宽。
	ErrRange = errors.New("xnet: integer out of range for IP address")
)
