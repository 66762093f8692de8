package xnet

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"
	"unicode"

	"go4.org/netipx"
)

// ParseRange 从字符串解析一个扫描目标范围。支持 4 种格式：
//   - 单 IP: "192.168.1.1"
//   - CIDR: "192.168.1.0/24"
//   - 掩码: "192.168.1.0/255.255.255.0"（仅 IPv4）
//   - 范围: "192.168.1.1-192.168.1.100"
//
// 输入会自动去除首尾空白。单 IP 与显式范围中的 IPv4-mapped 地址归一化为 IPv4。
func ParseRange(s string) (netipx.IPRange, error) {
	s = strings.TrimSpace(s)

	// netipx 会丢弃 zone，带 zone 的目标无法被准确表示。
	if strings.Contains(s, "%") {
		return netipx.IPRange{}, fmt.Errorf("%w: IPv6 zone ID is not supported in range operations: %s", ErrInvalidRange, s)
	}

	if from, to, ok := strings.Cut(s, "-"); ok {
		return parseExplicitRange(s, from, to)
	}

	if addrPart, maskPart, ok := strings.Cut(s, "/"); ok {
		addrPart = strings.TrimSpace(addrPart)
		maskPart = strings.TrimSpace(maskPart)
		if strings.Contains(maskPart, ".") {
			return parseRangeWithMask(addrPart, maskPart)
		}
		prefix, err := netip.ParsePrefix(addrPart + "/" + maskPart)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("%w: invalid CIDR: %w", ErrInvalidRange, err)
		}
		return netipx.RangeOfPrefix(prefix.Masked()), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	addr = addr.Unmap()
	return netipx.IPRangeFrom(addr, addr), nil
}

func parseExplicitRange(s, fromStr, toStr string) (netipx.IPRange, error) {
	from, err := netip.ParseAddr(strings.TrimSpace(fromStr))
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid range start: %s", ErrInvalidRange, fromStr)
	}
	to, err := netip.ParseAddr(strings.TrimSpace(toStr))
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid range end: %s", ErrInvalidRange, toStr)
	}
	r := netipx.IPRangeFrom(from.Unmap(), to.Unmap())
	if !r.IsValid() {
		return netipx.IPRange{}, fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
	return r, nil
}

// parseRangeWithMask 解析掩码格式（仅 IPv4），拒绝非连续掩码如 "255.0.255.0"。
func parseRangeWithMask(addrStr, maskStr string) (netipx.IPRange, error) {
	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid address: %w", ErrInvalidRange, err)
	}
	mask, err := netip.ParseAddr(maskStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid mask: %w", ErrInvalidRange, err)
	}
	addr, mask = addr.Unmap(), mask.Unmap()
	if !addr.Is4() || !mask.Is4() {
		return netipx.IPRange{}, fmt.Errorf("%w: mask notation only supports IPv4", ErrInvalidRange)
	}

	addrB, maskB := addr.As4(), mask.As4()
	addrUint := binary.BigEndian.Uint32(addrB[:])
	maskUint := binary.BigEndian.Uint32(maskB[:])

	// 合法掩码为前缀全 1、后缀全 0
	inverted := ^maskUint
	if inverted&(inverted+1) != 0 {
		return netipx.IPRange{}, fmt.Errorf("%w: non-contiguous mask: %s", ErrInvalidRange, maskStr)
	}

	start := addrUint & maskUint
	return netipx.IPRangeFrom(AddrFromUint32(start), AddrFromUint32(start|inverted)), nil
}

// ParseRanges 逐个解析并合并为 [*netipx.IPSet]。
// 空切片或 nil 返回空的 IPSet。
func ParseRanges(strs []string) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, s := range strs {
		r, err := ParseRange(s)
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", s, err)
		}
		b.AddRange(r)
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("%w: build IPSet: %w", ErrInvalidRange, err)
	}
	return set, nil
}

// ParseTargets 解析以逗号或空白分隔的目标列表，如
// "10.0.0.1-10.0.0.5, 192.168.0.0/24 2001:db8::1"。
// 列表中的单个范围不能包含空白。
func ParseTargets(spec string) (*netipx.IPSet, error) {
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return ParseRanges(fields)
}
