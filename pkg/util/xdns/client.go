package xdns

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/util/xnet"
	"github.com/omeyang/xsock/pkg/util/xresolve"
)

const (
	defaultPort = "53"
	// DefaultTimeout 是单次查询（A 或 AAAA）的默认超时。
	DefaultTimeout = 3 * time.Second
)

var _ xresolve.Resolver = (*Client)(nil)

type options struct {
	timeout time.Duration
	net     string
	logger  xlog.Logger
}

// Option 配置 [Client]。
type Option func(*options)

// WithTimeout 设置单次查询超时，非正数忽略。
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithNet 设置传输协议 "udp"（默认）或 "tcp"。
func WithNet(network string) Option {
	return func(o *options) {
		o.net = strings.ToLower(strings.TrimSpace(network))
	}
}

// WithLogger 设置日志，nil 忽略。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Client 直接向单个 DNS 服务器查询 A 和 AAAA 记录，实现 [xresolve.Resolver]。
// 不读取系统解析配置，不缓存，不重试。UDP 响应被截断时改用 TCP 重发一次。
type Client struct {
	server string
	net    string
	udp    *dns.Client
	tcp    *dns.Client
	logger xlog.Logger
}

// New 创建 Client。server 可以是 "host"、"host:port" 或 "[v6]:port"，缺省端口 53。
func New(server string, opts ...Option) (*Client, error) {
	addr, err := normalizeServer(server)
	if err != nil {
		return nil, err
	}
	o := options{timeout: DefaultTimeout, net: "udp"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.net != "udp" && o.net != "tcp" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNet, o.net)
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	return &Client{
		server: addr,
		net:    o.net,
		udp:    &dns.Client{Net: "udp", Timeout: o.timeout},
		tcp:    &dns.Client{Net: "tcp", Timeout: o.timeout},
		logger: o.logger.With(xlog.Component("xdns"), xlog.Server(addr)),
	}, nil
}

// Server 返回带端口的服务器地址。
func (c *Client) Server() string {
	return c.server
}

func normalizeServer(server string) (string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return "", ErrEmptyServer
	}
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server, nil
	}
	host := strings.TrimSuffix(strings.TrimPrefix(server, "["), "]")
	return net.JoinHostPort(host, defaultPort), nil
}

// Resolve 并行发送 A 和 AAAA 查询，A 记录排在 AAAA 之前，各自保持应答顺序并去重。
// NXDOMAIN 或没有记录时返回空切片。
func (c *Client) Resolve(ctx context.Context, host string) ([]xnet.Address, error) {
	name := dns.Fqdn(host)

	var v4, v6 []xnet.Address
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		v4, err = c.query(gctx, name, dns.TypeA)
		return err
	})
	g.Go(func() (err error) {
		v6, err = c.query(gctx, name, dns.TypeAAAA)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(v4, v6...), nil
}

func (c *Client) query(ctx context.Context, name string, qtype uint16) ([]xnet.Address, error) {
	req := new(dns.Msg)
	req.SetQuestion(name, qtype)
	req.RecursionDesired = true

	client := c.udp
	if c.net == "tcp" {
		client = c.tcp
	}
	resp, rtt, err := client.ExchangeContext(ctx, req, c.server)
	if err == nil && resp.Truncated && client == c.udp {
		c.logger.Debug(ctx, "truncated response, retrying over tcp", xlog.Host(name))
		resp, rtt, err = c.tcp.ExchangeContext(ctx, req, c.server)
	}
	qname := dns.TypeToString[qtype]
	if err != nil {
		c.logger.Warn(ctx, "dns query failed", xlog.Host(name), slogType(qname), xlog.Err(err))
		return nil, fmt.Errorf("xdns: %s %s via %s: %w", qname, name, c.server, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		c.logger.Debug(ctx, "nxdomain", xlog.Host(name), slogType(qname))
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s %s: %s", ErrServerFailure, qname, name, dns.RcodeToString[resp.Rcode])
	}

	addrs := extract(resp.Answer, qtype)
	c.logger.Debug(ctx, "dns answer", xlog.Host(name), slogType(qname), xlog.Count(len(addrs)), xlog.Duration(rtt))
	return addrs, nil
}

// extract 只取与 qtype 匹配的记录，CNAME 链上的目标记录只要出现在应答段中就会被采用。
func extract(answer []dns.RR, qtype uint16) []xnet.Address {
	out := make([]xnet.Address, 0, len(answer))
	seen := make(map[xnet.Address]struct{}, len(answer))
	for _, rr := range answer {
		var addr xnet.Address
		switch rec := rr.(type) {
		case *dns.A:
			ip4 := rec.A.To4()
			if qtype != dns.TypeA || ip4 == nil {
				continue
			}
			addr = xnet.AddressFrom4([4]byte(ip4))
		case *dns.AAAA:
			ip16 := rec.AAAA.To16()
			if qtype != dns.TypeAAAA || ip16 == nil {
				continue
			}
			addr = xnet.AddressFrom16([16]byte(ip16))
		default:
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func slogType(t string) slog.Attr {
	return slog.String("qtype", t)
}
