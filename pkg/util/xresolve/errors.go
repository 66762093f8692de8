package xresolve

import "errors"

var (
	// ErrResolution 表示主机名无法解析出任何地址。
	ErrResolution = errors.New("xresolve: resolution failed")
	// ErrNilResolver 表示 New 收到了 nil Resolver。
	ErrNilResolver = errors.New("xresolve: nil resolver")
)
