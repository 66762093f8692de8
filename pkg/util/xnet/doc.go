// Package xnet 提供 IP 地址编解码工具。
//
// xnet 基于 Go 标准库 [net/netip] 和社区库 [go4.org/netipx] 构建，
// 负责整数、二进制（网络字节序）与规范文本三种地址形式之间的互转，
// 以及地址族判断和扫描目标范围的解析与遍历。所有函数都是纯函数，不做 I/O，
// 可被任意数量的 goroutine 并发调用。
//
// # 核心功能
//
//   - version.go: 地址族 [Version]（V0 未指定 / V4 / V6）及 [ParseVersion]
//   - address.go: 带地址族标记的二进制地址 [Address]，载荷恒为 4 或 16 字节
//   - convert.go: [IntegerToAddress] 整数转地址文本，uint32/big.Int 与 [netip.Addr] 互转
//   - compress.go: [CompressAddress] RFC 5952 零段压缩，[ExpandAddress] 完全展开
//   - literal.go: [ParseLiteral]、[IsIPv4Literal]、[IsIPv6Literal] 字面量判断，不做解析
//   - parse.go: [ParseRange]/[ParseTargets] 解析单 IP、CIDR、掩码、范围格式
//   - walker.go: [Walker] 逐个遍历 [*netipx.IPSet] 中的地址
//
// # 快速示例
//
//	s, _ := xnet.IntegerToAddressUint64(0x100000001, xnet.V0)
//	fmt.Println(s) // ::1:0:1（超出 32 位，推断为 IPv6）
//
//	s, _ = xnet.IntegerToAddressUint64(1, xnet.V6)
//	fmt.Println(s) // ::1
//
//	s, _ = xnet.CompressAddress("fe80:0:0:0:0:0:0:1")
//	fmt.Println(s) // fe80::1
//
//	a, _ := xnet.ParseLiteral("127.0.0.1")
//	fmt.Printf("% x\n", a.Bytes()) // 7f 00 00 01
//
// # 地址族推断
//
// [IntegerToAddress] 的 force 参数为 V0 时按数值推断：0 ≤ v ≤ 2^32-1 为 IPv4，
// 否则为 IPv6。强制 V4 且数值超过 32 位时返回 [ErrRange]，不做截断，
// 避免把一个 IPv6 数值静默映射成毫不相关的 IPv4 地址。
//
// # 零段压缩
//
// 在所有全零 hextet 的极大连续段中选择长度 ≥ 2 的最长段替换为 "::"，
// 并列时选最左侧；单个零 hextet 不压缩。IPv6 输出始终为纯 hextet 形式，
// IPv4-mapped 地址输出为 "::ffff:c0a8:101" 而非 "::ffff:192.168.1.1"，
// 这保证了 "字面量 → 二进制 → 整数 → 文本" 的往返结果与 [CompressAddress] 一致。
//
// # 字面量与 zone
//
// 带 zone 的 IPv6 文本（如 "fe80::1%eth0"）不是字面量：[ParseLiteral] 返回
// [ErrInvalidAddress]，两个判断函数返回 false。[ParseRange] 同样拒绝 zone，
// 因为 [netipx.IPRange] 会静默丢弃 zone 信息。
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断：
//
//	_, err := xnet.IntegerToAddress(big.NewInt(-1), xnet.V0)
//	if errors.Is(err, xnet.ErrRange) {
//	    // 负数或超宽整数
//	}
package xnet
