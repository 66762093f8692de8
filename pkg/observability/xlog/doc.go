// Package xlog 是基于 log/slog 的结构化日志。
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xsockctl.log").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "resolved", xlog.Host("example.com"), xlog.Count(2))
//
// 级别可在运行时通过 [Leveler.SetLevel] 调整，派生 Logger 同步生效。
// 全局函数 [Info] 等使用 [Default]，适合命令行工具。
package xlog
