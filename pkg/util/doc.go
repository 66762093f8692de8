// Package util 提供地址与端口相关的子包。
//
// 子包列表：
//   - xnet: IP 地址编解码，整数与地址互转、RFC 5952 压缩、目标范围遍历
//   - xport: 端口规格解析，支持 "!" 排除与开放区间，越界值截断到 [1, 65535]
//   - xresolve: 主机名解析适配器，字面量直通，可注入解析后端
//   - xdns: 基于 miekg/dns 的解析后端，直接查询指定 DNS 服务器
//
// 设计原则：
//   - 无状态函数可重入，阻塞操作接受 context.Context
//   - 错误使用带包名前缀的哨兵错误，通过 errors.Is 匹配
package util
