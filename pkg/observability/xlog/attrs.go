package xlog

import (
	"log/slog"
	"time"
)

// 标准字段名。
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyHost      = "host"
	KeyAddress   = "address"
	KeyServer    = "server"
)

// Err 返回错误属性，err 为 nil 时返回会被 slog 忽略的空属性。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Host 是待解析的主机名或地址文本。
func Host(h string) slog.Attr {
	return slog.String(KeyHost, h)
}

func Address(a string) slog.Attr {
	return slog.String(KeyAddress, a)
}

// Server 是 DNS 服务器地址。
func Server(s string) slog.Attr {
	return slog.String(KeyServer, s)
}
