// Package xdns 是基于 miekg/dns 的直连 DNS 解析器。
//
// [Client] 绕过系统解析配置，直接向指定服务器发送 A/AAAA 查询，
// 可作为 xresolve.Adapter 的后端：
//
//	c, err := xdns.New("1.1.1.1", xdns.WithTimeout(2*time.Second))
//	a, err := xresolve.New(c)
package xdns
