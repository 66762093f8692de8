// xsockctl 是地址与端口规格工具箱的命令行入口。
//
// 用法:
//
//	xsockctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件（YAML/JSON）
//	    --log-level   日志级别 debug/info/warn/error（默认 warn）
//	    --log-format  日志格式 text/json（默认 text）
//	    --log-file    日志文件，按大小轮转；缺省输出到 stderr
//	-r, --resolver    解析后端 system/dns（默认 system）
//	    --dns-server  dns 后端使用的服务器，如 1.1.1.1 或 [2606:4700::1111]:53
//	-t, --timeout     解析超时（默认 5s）
//
// 命令行选项优先于配置文件。
//
// 命令:
//
//	itoa <int>          整数转地址文本，支持 0x 前缀；--family 4|6 强制地址族
//	aton <text>         地址或主机名转网络字节序，十六进制输出
//	compress <addr>     IPv6 零段压缩
//	expand <addr>       IPv6 完全展开
//	is-v4 <text>        是否 IPv4 字面量
//	is-v6 <text>        是否 IPv6 字面量
//	ports <spec>        展开端口规格，如 "1-1024,!25,8080-"
//	resolve <host...>   解析主机名；--first 只取第一个，--no-ipv6 剔除 IPv6
//	walk <target...>    逐个列出 IP/CIDR/范围中的地址
//
// 退出码:
//
//	0: 成功（is-v4/is-v6: 是）
//	1: 失败（is-v4/is-v6: 否）
//	2: 参数错误
//
// 示例:
//
//	xsockctl itoa 0x100000001                 # ::1:0:1
//	xsockctl itoa --family 6 1                # ::1
//	xsockctl ports -- "-1,0-10,!2-5,!7"       # 1,6,8-10
//	xsockctl -r dns --dns-server 9.9.9.9 resolve --no-ipv6 example.com
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息，通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError 表示输出已完成，只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xsockctl",
		Usage:     "IP 地址编解码、端口规格展开与主机名解析",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands:  createCommands(),
		Before:    setupRuntime,
		After:     teardownRuntime,
		// urfave/cli 不直接退出进程，退出码由 run 统一映射
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := createApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// isCLIUsageError 识别 urfave/cli 自身产生的参数解析错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"flag provided but not defined",
		"flag needs an argument",
		"invalid value",
		"No help topic for",
		"Required flag",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
