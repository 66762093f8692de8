package xmetrics

import (
	"context"
	"strconv"
)

// Kind 表示观测跨度类型。
type Kind int

const (
	// KindInternal 表示进程内操作，如地址编解码。
	KindInternal Kind = iota
	// KindClient 表示对外调用，如向 DNS 服务器查询。
	KindClient
)

// String 返回 Kind 的可读形式。
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "Internal"
	case KindClient:
		return "Client"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Status 表示观测结果状态。
type Status string

const (
	// StatusOK 表示成功。
	StatusOK Status = "ok"
	// StatusError 表示失败。
	StatusError Status = "error"
)

// Attr 是一个观测属性。
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 是开始观测跨度时的参数。
type SpanOptions struct {
	// Component 是组件名，如 "xresolve"。
	Component string
	// Operation 是操作名，如 "resolve"。
	Operation string
	Kind      Kind
	Attrs     []Attr
}

// Result 是观测跨度结束时的结果。Status 为空时由 Err 推导。
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

// Span 表示一次进行中的观测。
type Span interface {
	End(result Result)
}

// Observer 是统一观测接口，业务代码只依赖它。
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 是空实现。
type NoopObserver struct{}

// Start 原样返回 ctx（nil 时为 context.Background()）和空跨度。
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 是空跨度。
type NoopSpan struct{}

// End 不做任何事。
func (NoopSpan) End(Result) {}

// Start 用 observer 开始观测，保证返回非 nil 的 ctx 和 Span。
// observer 为 nil 或返回 nil Span 时退化为 [NoopSpan]。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
