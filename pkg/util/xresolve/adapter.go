package xresolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/observability/xmetrics"
	"github.com/omeyang/xsock/pkg/util/xnet"
)

const (
	componentName = "xresolve"

	// DefaultConcurrency 是 ResolveMany 的默认并发上限。
	DefaultConcurrency = 8
)

// Option 配置 [Adapter]。
type Option func(*Adapter)

// WithLogger 设置日志，nil 忽略。默认使用 xlog.Default()。
func WithLogger(l xlog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver 设置观测器，nil 忽略。默认不观测。
func WithObserver(o xmetrics.Observer) Option {
	return func(a *Adapter) {
		if o != nil {
			a.observer = o
		}
	}
}

// WithConcurrency 设置 ResolveMany 的并发上限，非正数忽略。
func WithConcurrency(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// Adapter 把地址文本或主机名统一变成地址。字面量直接解析，
// 其余文本交给注入的 [Resolver]。Adapter 不缓存、不重试，也不设超时，
// 截止时间由调用方通过 ctx 控制。Adapter 可并发使用。
type Adapter struct {
	resolver    Resolver
	logger      xlog.Logger
	observer    xmetrics.Observer
	concurrency int
}

// New 创建 Adapter。
func New(r Resolver, opts ...Option) (*Adapter, error) {
	if r == nil {
		return nil, ErrNilResolver
	}
	a := &Adapter{
		resolver:    r,
		observer:    xmetrics.NoopObserver{},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.logger == nil {
		a.logger = xlog.Default()
	}
	a.logger = a.logger.With(xlog.Component(componentName))
	return a, nil
}

// ResolveHostname 返回 text 的全部候选地址，至少一个。
//
// text 是 IPv4 或 IPv6 字面量时直接返回该地址，不调用 Resolver。
// 解析器出错或没有返回地址时，错误匹配 [ErrResolution]。
func (a *Adapter) ResolveHostname(ctx context.Context, text string) ([]xnet.Address, error) {
	if lit, err := xnet.ParseLiteral(text); err == nil {
		return []xnet.Address{lit}, nil
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty host", ErrResolution)
	}
	return a.lookup(ctx, text)
}

func (a *Adapter) lookup(ctx context.Context, host string) (addrs []xnet.Address, err error) {
	ctx, span := xmetrics.Start(ctx, a.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "resolve",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{xmetrics.String("host", host)},
	})
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Int("answers", len(addrs))}})
	}()

	start := time.Now()
	raw, err := a.resolver.Resolve(ctx, host)
	if err != nil {
		a.logger.Warn(ctx, "resolve failed", xlog.Host(host), xlog.Err(err), xlog.Duration(time.Since(start)))
		return nil, fmt.Errorf("%w: %s: %w", ErrResolution, host, err)
	}

	addrs = make([]xnet.Address, 0, len(raw))
	for _, addr := range raw {
		if addr.IsValid() {
			addrs = append(addrs, addr)
		}
	}
	if len(addrs) == 0 {
		a.logger.Warn(ctx, "resolve returned no addresses", xlog.Host(host))
		return nil, fmt.Errorf("%w: %s: no addresses", ErrResolution, host)
	}
	a.logger.Debug(ctx, "resolved", xlog.Host(host), xlog.Count(len(addrs)), xlog.Duration(time.Since(start)))
	return addrs, nil
}

// FirstAddressText 返回第一个候选地址的规范文本（IPv6 为压缩形式）。
func (a *Adapter) FirstAddressText(ctx context.Context, text string) (string, error) {
	addrs, err := a.ResolveHostname(ctx, text)
	if err != nil {
		return "", err
	}
	return addrs[0].String(), nil
}

// AllAddressTexts 返回全部候选地址的规范文本，保持解析器顺序。
// acceptIPv6 为 false 时剔除 IPv6 地址；剔除后为空时返回空切片而非错误。
func (a *Adapter) AllAddressTexts(ctx context.Context, text string, acceptIPv6 bool) ([]string, error) {
	addrs, err := a.ResolveHostname(ctx, text)
	if err != nil {
		return nil, err
	}
	return addressTexts(addrs, acceptIPv6), nil
}

func addressTexts(addrs []xnet.Address, acceptIPv6 bool) []string {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if !acceptIPv6 && addr.Version() == xnet.V6 {
			continue
		}
		out = append(out, addr.String())
	}
	return out
}

// AddressToBinary 返回 text 的二进制地址：IPv4 字面量 4 字节，IPv6 字面量 16 字节，
// 否则取第一个解析结果。失败时错误同时匹配 [xnet.ErrInvalidAddress] 和 [ErrResolution]。
func (a *Adapter) AddressToBinary(ctx context.Context, text string) (xnet.Address, error) {
	addrs, err := a.ResolveHostname(ctx, text)
	if err != nil {
		return xnet.Address{}, fmt.Errorf("%w: %w", xnet.ErrInvalidAddress, err)
	}
	return addrs[0], nil
}

// ResolveMany 并发解析多个主机，结果按主机索引，值语义同 [Adapter.AllAddressTexts]。
//
// 单个主机失败不影响其他主机：成功的结果照常返回，所有失败通过 errors.Join 合并。
// 重复的主机只解析一次。ctx 取消后尚未开始的解析不再发起。
func (a *Adapter) ResolveMany(ctx context.Context, hosts []string, acceptIPv6 bool) (map[string][]string, error) {
	var (
		mu      sync.Mutex
		results = make(map[string][]string, len(hosts))
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	seen := make(map[string]struct{}, len(hosts))
	for _, host := range hosts {
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			texts, err := a.AllAddressTexts(gctx, host, acceptIPv6)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			results[host] = texts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}
	a.logger.Debug(ctx, "resolve many finished",
		xlog.Count(len(results)),
		slog.Int("failed", len(errs)),
	)
	return results, errors.Join(errs...)
}
