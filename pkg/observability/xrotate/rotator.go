package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 是可轮转的日志输出目标，实现必须并发安全。
// Close 之后 Write 和 Rotate 返回 [ErrClosed]。
type Rotator interface {
	Write(p []byte) (n int, err error)
	// Close 关闭当前文件，重复调用返回 [ErrClosed]。
	Close() error
	// Rotate 立即把当前文件改名为备份并打开新文件。
	Rotate() error
}
