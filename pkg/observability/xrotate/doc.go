// Package xrotate 提供按大小轮转的日志文件输出，基于 lumberjack v2。
//
//	r, err := xrotate.NewLumberjack("/var/log/xsockctl.log",
//		xrotate.WithMaxSize(50),
//		xrotate.WithMaxBackups(3),
//	)
//
// [Rotator] 满足 io.WriteCloser，可直接作为 xlog 的输出目标。
package xrotate
