package xlog

import (
	"context"
	"log/slog"
)

// Logger 是结构化日志接口。
//
// 所有方法都要求 context.Context，属性只接受 slog.Attr，避免隐式 key-value 转换。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回带固定属性的派生 Logger，派生 Logger 与父级共享级别。
	With(attrs ...slog.Attr) Logger
	// WithGroup 返回带分组的派生 Logger。
	WithGroup(name string) Logger
}

// Leveler 是动态级别控制接口，与 Logger 分离以保持日志接口最小。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	// Enabled 用于在构造昂贵的日志参数前先检查级别。
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 是 [Builder.Build] 的返回类型。
type LoggerWithLevel interface {
	Logger
	Leveler
}
