package xrotate

import "errors"

var (
	// ErrEmptyFilename 文件名为空。
	ErrEmptyFilename = errors.New("xrotate: filename is required")
	// ErrInvalidMaxSize MaxSizeMB 不在 1~10240 范围内。
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSizeMB")
	// ErrInvalidMaxBackups MaxBackups 不在 0~1024 范围内。
	ErrInvalidMaxBackups = errors.New("xrotate: invalid MaxBackups")
	// ErrInvalidMaxAge MaxAgeDays 不在 0~3650 范围内。
	ErrInvalidMaxAge = errors.New("xrotate: invalid MaxAgeDays")
	// ErrNoCleanupPolicy MaxBackups 和 MaxAgeDays 同时为 0。
	ErrNoCleanupPolicy = errors.New("xrotate: no cleanup policy configured")
	// ErrClosed 轮转器已关闭。
	ErrClosed = errors.New("xrotate: rotator is closed")
)
