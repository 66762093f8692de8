package xport

import "errors"

// ErrSyntax 表示端口规格中某个 token 不是数字或范围形状。
// 数值越界不属于语法错误，会被静默裁剪。
var ErrSyntax = errors.New("xport: invalid port spec syntax")
