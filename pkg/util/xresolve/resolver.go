package xresolve

//go:generate mockgen -source=resolver.go -destination=resolver_mock_test.go -package=xresolve

import (
	"context"
	"net"

	"github.com/omeyang/xsock/pkg/util/xnet"
)

// Resolver 把主机名解析为候选地址，顺序即解析器给出的优先顺序。
// 返回空切片且无错误表示名称存在但没有地址记录。
type Resolver interface {
	Resolve(ctx context.Context, host string) ([]xnet.Address, error)
}

// ResolverFunc 让普通函数满足 [Resolver]。
type ResolverFunc func(ctx context.Context, host string) ([]xnet.Address, error)

func (f ResolverFunc) Resolve(ctx context.Context, host string) ([]xnet.Address, error) {
	return f(ctx, host)
}

// SystemResolver 使用操作系统的解析配置（hosts 文件、nsswitch、resolv.conf）。
type SystemResolver struct {
	// Resolver 为 nil 时使用 net.DefaultResolver。
	Resolver *net.Resolver
}

// Resolve 调用 LookupNetIP，IPv4-mapped 结果还原为 IPv4，zone 被丢弃。
func (s SystemResolver) Resolve(ctx context.Context, host string) ([]xnet.Address, error) {
	r := s.Resolver
	if r == nil {
		r = net.DefaultResolver
	}
	ips, err := r.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, err
	}
	out := make([]xnet.Address, 0, len(ips))
	for _, ip := range ips {
		a, err := xnet.AddressFromAddr(ip.Unmap())
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
