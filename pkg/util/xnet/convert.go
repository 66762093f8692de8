package xnet

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"net/netip"
)

// IntegerToAddress 将非负整数转换为规范地址文本。
//
// force 指定地址族：
//   - V6: 按 128 位无符号数渲染为 8 组 hextet，并应用零段压缩
//   - V4: 按 32 位无符号数渲染为点分十进制
//   - V0: 值 ≤ 2^32-1 时渲染为 IPv4，否则为 IPv6
//
// 负数、超过 128 位，或强制 V4 时超过 32 位，返回 [ErrRange]。
// 强制 V4 不做低 32 位截断。
func IntegerToAddress(v *big.Int, force Version) (string, error) {
	a, err := AddressFromInteger(v, force)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// IntegerToAddressUint64 是 [IntegerToAddress] 的 uint64 便捷版本。
func IntegerToAddressUint64(v uint64, force Version) (string, error) {
	return IntegerToAddress(new(big.Int).SetUint64(v), force)
}

// AddressFromInteger 将非负整数转换为 [Address]，地址族规则同 [IntegerToAddress]。
func AddressFromInteger(v *big.Int, force Version) (Address, error) {
	if v == nil {
		return Address{}, fmt.Errorf("%w: nil value", ErrRange)
	}
	if v.Sign() < 0 {
		return Address{}, fmt.Errorf("%w: negative value %s", ErrRange, v)
	}

	switch force {
	case V0:
		if v.BitLen() <= 32 {
			force = V4
		} else {
			force = V6
		}
	case V4, V6:
	default:
		return Address{}, fmt.Errorf("%w: %d", ErrInvalidVersion, force)
	}

	switch force {
	case V4:
		if v.BitLen() > 32 {
			return Address{}, fmt.Errorf("%w: %s exceeds 32 bits", ErrRange, v)
		}
		var b [4]byte
		v.FillBytes(b[:])
		return AddressFrom4(b), nil
	default:
		if v.BitLen() > 128 {
			return Address{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrRange, v)
		}
		var b [16]byte
		v.FillBytes(b[:])
		return AddressFrom16(b), nil
	}
}

// AddrFromUint32 从 IPv4 的 uint32 表示创建 [netip.Addr]。
// 使用网络字节序（大端）。
func AddrFromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// AddrToUint32 将 IPv4 地址转换为 uint32（网络字节序）。
// 非 IPv4 地址返回 (0, false)。
func AddrToUint32(addr netip.Addr) (uint32, bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return 0, false
	}
	b := addr.Unmap().As4()
	return binary.BigEndian.Uint32(b[:]), true
}

// AddrFromBigInt 从 [*big.Int] 创建 [netip.Addr]，需指定目标 IP 版本。
// 值越界返回 [ErrRange]，版本无效返回 [ErrInvalidVersion]。
func AddrFromBigInt(v *big.Int, ver Version) (netip.Addr, error) {
	if ver != V4 && ver != V6 {
		return netip.Addr{}, ErrInvalidVersion
	}
	a, err := AddressFromInteger(v, ver)
	if err != nil {
		return netip.Addr{}, err
	}
	return a.Addr(), nil
}

// AddrToBigInt 将地址转换为 [*big.Int]。
// IPv4-mapped IPv6 地址按 IPv4 取值；无效地址返回零值 big.Int。
func AddrToBigInt(addr netip.Addr) *big.Int {
	if !addr.IsValid() {
		return new(big.Int)
	}
	if v, ok := AddrToUint32(addr); ok {
		return new(big.Int).SetUint64(uint64(v))
	}
	b := addr.As16()
	return new(big.Int).SetBytes(b[:])
}
