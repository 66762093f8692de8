package xnet

import (
	"fmt"
	"net/netip"
)

// ParseLiteral 将 IPv4 点分四段或 IPv6 字面量（含 "::" 缩写和内嵌 IPv4 写法）
// 解析为 [Address]，不做任何名称解析。
//
// 带 zone 的地址（如 "fe80::1%eth0"）不是字面量，返回 [ErrInvalidAddress]。
func ParseLiteral(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if addr.Zone() != "" {
		return Address{}, fmt.Errorf("%w: zone is not allowed in a literal: %s", ErrInvalidAddress, s)
	}
	return Address{addr: addr}, nil
}

// IsIPv4Literal 报告 s 是否为 IPv4 点分四段字面量。
// 空串、主机名和 IPv6 文本均返回 false。
func IsIPv4Literal(s string) bool {
	a, err := ParseLiteral(s)
	return err == nil && a.Version() == V4
}

// IsIPv6Literal 报告 s 是否为 IPv6 字面量。
// 空串、主机名和 IPv4 点分四段文本均返回 false。
func IsIPv6Literal(s string) bool {
	a, err := ParseLiteral(s)
	return err == nil && a.Version() == V6
}
