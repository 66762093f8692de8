package xnet

import (
	"fmt"
	"math/big"
	"net/netip"
)

// Address 是带地址族标记的二进制 IP 地址。
//
// IPv4 的载荷恒为 4 字节，IPv6 恒为 16 字节，均为网络字节序。
// IPv4-mapped 文本（如 "::ffff:1.2.3.4"）属于 IPv6 字面量，载荷为 16 字节。
// Address 不携带 zone。零值无效，[Address.IsValid] 返回 false。
type Address struct {
	addr netip.Addr
}

// AddressFrom4 从 4 字节载荷创建 IPv4 地址。
func AddressFrom4(b [4]byte) Address {
	return Address{addr: netip.AddrFrom4(b)}
}

// AddressFrom16 从 16 字节载荷创建 IPv6 地址。
func AddressFrom16(b [16]byte) Address {
	return Address{addr: netip.AddrFrom16(b)}
}

// AddressFromBytes 从二进制载荷创建地址，长度必须为 4 或 16。
func AddressFromBytes(b []byte) (Address, error) {
	switch len(b) {
	case 4:
		return AddressFrom4([4]byte(b)), nil
	case 16:
		return AddressFrom16([16]byte(b)), nil
	default:
		return Address{}, fmt.Errorf("%w: payload length %d", ErrInvalidAddress, len(b))
	}
}

// AddressFromAddr 从 [netip.Addr] 创建地址，丢弃 zone。
// 地址族保持 netip.Addr 的原样：IPv4-mapped 地址仍为 IPv6。
func AddressFromAddr(addr netip.Addr) (Address, error) {
	if !addr.IsValid() {
		return Address{}, fmt.Errorf("%w: zero netip.Addr", ErrInvalidAddress)
	}
	return Address{addr: addr.WithZone("")}, nil
}

// IsValid 报告 a 是否为有效地址。
func (a Address) IsValid() bool {
	return a.addr.IsValid()
}

// Version 返回地址族。零值返回 V0。
func (a Address) Version() Version {
	switch {
	case a.addr.Is4():
		return V4
	case a.addr.Is6():
		return V6
	default:
		return V0
	}
}

// Len 返回二进制载荷长度（4、16，零值为 0）。
func (a Address) Len() int {
	return a.addr.BitLen() / 8
}

// Bytes 返回网络字节序的二进制载荷副本。零值返回 nil。
func (a Address) Bytes() []byte {
	switch a.Version() {
	case V4:
		b := a.addr.As4()
		return b[:]
	case V6:
		b := a.addr.As16()
		return b[:]
	default:
		return nil
	}
}

// Addr 返回对应的 [netip.Addr]。
func (a Address) Addr() netip.Addr {
	return a.addr
}

// BigInt 返回地址的无符号整数值。
// 与 [AddrToBigInt] 不同，IPv4-mapped 地址按完整 128 位取值。
func (a Address) BigInt() *big.Int {
	return new(big.Int).SetBytes(a.Bytes())
}

// String 返回规范文本：IPv4 为点分十进制，IPv6 为按 RFC 5952 压缩的 8 组十六进制。
// IPv6 不使用内嵌 IPv4 的混合写法。零值返回空字符串。
func (a Address) String() string {
	switch a.Version() {
	case V4:
		return a.addr.String()
	case V6:
		return formatHextets(a.addr.As16(), true)
	default:
		return ""
	}
}

// Expanded 返回完全展开的文本：IPv6 为 8 组 4 位十六进制，IPv4 为点分十进制。
func (a Address) Expanded() string {
	switch a.Version() {
	case V4:
		return a.addr.String()
	case V6:
		return formatHextets(a.addr.As16(), false)
	default:
		return ""
	}
}

// MarshalText 实现 [encoding.TextMarshaler]，输出 [Address.String]。
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。
// 空输入得到零值；其余输入必须是 IP 字面量。
func (a *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Address{}
		return nil
	}
	parsed, err := ParseLiteral(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
