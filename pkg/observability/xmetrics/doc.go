// Package xmetrics 提供统一的观测接口（metrics + tracing）。
//
// 业务代码只依赖 [Observer]/[Span]/[Attr]，默认实现基于 OpenTelemetry：
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xresolve",
//		Operation: "resolve",
//		Kind:      xmetrics.KindClient,
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标
//
//   - xsock.operation.total     计数，单位 1
//   - xsock.operation.duration  直方图，单位 s
//
// 两者均带 component / operation / status 属性。
package xmetrics
