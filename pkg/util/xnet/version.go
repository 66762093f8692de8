package xnet

import (
	"fmt"
	"net/netip"
	"strings"
)

// Version 表示 IP 协议版本（地址族）。
// 在需要"强制地址族"的参数位置，V0 表示未指定。
type Version uint8

const (
	// V0 表示无效、未知或未指定的 IP 版本。
	V0 Version = 0
	// V4 表示 IPv4。
	V4 Version = 4
	// V6 表示 IPv6。
	V6 Version = 6
)

// String 返回版本的字符串表示。
func (v Version) String() string {
	switch v {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// ParseVersion 解析地址族名称。
// 接受 "4"/"v4"/"ipv4"、"6"/"v6"/"ipv6"，大小写不敏感；
// 空串、"0" 和 "auto" 返回 V0（由调用方自动推断）。
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "auto":
		return V0, nil
	case "4", "v4", "ipv4":
		return V4, nil
	case "6", "v6", "ipv6":
		return V6, nil
	default:
		return V0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
}

// AddrVersion 返回 addr 的 IP 版本（V4 或 V6）。
// IPv4-mapped IPv6 地址视为 V4。
// 无效地址返回 V0。
//
// 注意：[Address.Version] 按二进制长度判断，IPv4-mapped 地址属于 V6。
func AddrVersion(addr netip.Addr) Version {
	if addr.Is4() || addr.Is4In6() {
		return V4
	}
	if addr.IsValid() {
		return V6
	}
	return V0
}
