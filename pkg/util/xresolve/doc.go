// Package xresolve 把地址文本或主机名统一解析为 [xnet.Address]。
//
// IPv4/IPv6 字面量在本地直接解析；其余文本交给注入的 [Resolver]：
//
//	a, _ := xresolve.New(xresolve.SystemResolver{})
//	first, err := a.FirstAddressText(ctx, "localhost")
//	all, err := a.AllAddressTexts(ctx, "example.com", false) // 只要 IPv4
//	bin, err := a.AddressToBinary(ctx, "fe80::1")             // 16 字节
//
// 解析失败统一匹配 [ErrResolution]。Adapter 本身不定义超时，
// 需要超时的调用方在 ctx 上设置。直接 DNS 查询见 xdns 包。
package xresolve
