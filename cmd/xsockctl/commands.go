package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsock/pkg/util/xnet"
	"github.com/omeyang/xsock/pkg/util/xport"
)

func createCommands() []*cli.Command {
	return []*cli.Command{
		createItoaCommand(),
		createAtonCommand(),
		createCompressCommand("compress", "IPv6 零段压缩（RFC 5952）", xnet.CompressAddress),
		createCompressCommand("expand", "IPv6 完全展开", xnet.ExpandAddress),
		createLiteralCommand("is-v4", "是否 IPv4 字面量", xnet.IsIPv4Literal),
		createLiteralCommand("is-v6", "是否 IPv6 字面量", xnet.IsIPv6Literal),
		createPortsCommand(),
		createResolveCommand(),
		createWalkCommand(),
	}
}

// oneArg 取唯一的位置参数，个数不对时返回参数错误。
func oneArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", usagef("%s 需要且只需要 1 个参数 %s", cmd.Name, cmd.ArgsUsage)
	}
	return cmd.Args().First(), nil
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func createItoaCommand() *cli.Command {
	return &cli.Command{
		Name:      "itoa",
		Usage:     "整数转地址文本（十进制或 0x 十六进制）",
		ArgsUsage: "<int>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "family",
				Aliases: []string{"f"},
				Usage:   "强制地址族 4 或 6，缺省按数值大小推断",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			arg, err := oneArg(cmd)
			if err != nil {
				return err
			}
			v, ok := new(big.Int).SetString(arg, 0)
			if !ok {
				return usagef("无效整数 %q", arg)
			}
			family, err := xnet.ParseVersion(cmd.String("family"))
			if err != nil {
				return &usageError{msg: err.Error()}
			}
			s, err := xnet.IntegerToAddress(v, family)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout(cmd), s)
			return err
		},
	}
}

func createAtonCommand() *cli.Command {
	return &cli.Command{
		Name:      "aton",
		Usage:     "地址或主机名转网络字节序（十六进制）",
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg, err := oneArg(cmd)
			if err != nil {
				return err
			}
			rt, err := runtimeFrom(ctx)
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(ctx)
			defer cancel()

			addr, err := rt.adapter.AddressToBinary(ctx, arg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout(cmd), hex.EncodeToString(addr.Bytes()))
			return err
		},
	}
}

func createCompressCommand(name, usage string, fn func(string) (string, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<addr>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			arg, err := oneArg(cmd)
			if err != nil {
				return err
			}
			s, err := fn(arg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout(cmd), s)
			return err
		},
	}
}

// createLiteralCommand 输出 true/false，false 时退出码 1，便于脚本判断。
func createLiteralCommand(name, usage string, pred func(string) bool) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<text>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			arg, err := oneArg(cmd)
			if err != nil {
				return err
			}
			ok := pred(arg)
			fmt.Fprintln(stdout(cmd), ok)
			if !ok {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func createPortsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ports",
		Usage:     `展开端口规格，如 "1-1024,!25,8080-"`,
		ArgsUsage: "<spec>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: "每行输出一个端口"},
			&cli.BoolFlag{Name: "count", Usage: "只输出端口数量"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			// 以 '-' 开头的规格需要放在 "--" 之后，多个参数按逗号拼接
			if cmd.NArg() == 0 {
				return usagef("ports 需要端口规格参数")
			}
			set, err := xport.ParseSet(strings.Join(cmd.Args().Slice(), ","))
			if err != nil {
				return err
			}
			w := stdout(cmd)
			switch {
			case cmd.Bool("count"):
				_, err = fmt.Fprintln(w, set.Len())
			case cmd.Bool("list"):
				for _, p := range set.Ports() {
					if _, err = fmt.Fprintln(w, p); err != nil {
						break
					}
				}
			default:
				_, err = fmt.Fprintln(w, set.String())
			}
			return err
		},
	}
}

func createResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "解析主机名，字面量原样返回",
		ArgsUsage: "<host...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "first", Usage: "只输出第一个地址"},
			&cli.BoolFlag{Name: "no-ipv6", Usage: "剔除 IPv6 地址"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hosts := cmd.Args().Slice()
			if len(hosts) == 0 {
				return usagef("resolve 需要至少 1 个主机名")
			}
			rt, err := runtimeFrom(ctx)
			if err != nil {
				return err
			}
			ctx, cancel := rt.withTimeout(ctx)
			defer cancel()

			first := cmd.Bool("first")
			acceptIPv6 := !cmd.Bool("no-ipv6")
			if len(hosts) == 1 {
				return resolveOne(ctx, rt, stdout(cmd), hosts[0], first, acceptIPv6)
			}
			return resolveMany(ctx, rt, stdout(cmd), hosts, first, acceptIPv6)
		},
	}
}

func resolveOne(ctx context.Context, rt *appRuntime, w io.Writer, host string, first, acceptIPv6 bool) error {
	if first && acceptIPv6 {
		s, err := rt.adapter.FirstAddressText(ctx, host)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}
	texts, err := rt.adapter.AllAddressTexts(ctx, host, acceptIPv6)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		// 候选地址全部被过滤
		return &exitError{code: 1}
	}
	if first {
		texts = texts[:1]
	}
	for _, s := range texts {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// resolveMany 按输入顺序每行输出 "host addr..."，失败的主机不输出，错误在最后返回。
func resolveMany(ctx context.Context, rt *appRuntime, w io.Writer, hosts []string, first, acceptIPv6 bool) error {
	results, resolveErr := rt.adapter.ResolveMany(ctx, hosts, acceptIPv6)
	printed := make(map[string]bool, len(hosts))
	for _, host := range hosts {
		texts, ok := results[host]
		if !ok || printed[host] {
			continue
		}
		printed[host] = true
		if first && len(texts) > 1 {
			texts = texts[:1]
		}
		if _, err := fmt.Fprintln(w, strings.TrimSpace(host+" "+strings.Join(texts, " "))); err != nil {
			return err
		}
	}
	return resolveErr
}

func createWalkCommand() *cli.Command {
	return &cli.Command{
		Name:      "walk",
		Usage:     "逐个列出 IP、CIDR、a-b 范围或 addr/mask 中的地址",
		ArgsUsage: "<target...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "count", Usage: "只输出地址总数"},
			&cli.Uint64Flag{Name: "limit", Usage: "最多输出的地址数，0 表示不限"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return usagef("walk 需要至少 1 个目标")
			}
			set, err := xnet.ParseTargets(strings.Join(cmd.Args().Slice(), " "))
			if err != nil {
				return err
			}
			w := xnet.NewWalker(set)
			out := stdout(cmd)
			if cmd.Bool("count") {
				_, err = fmt.Fprintln(out, w.Len())
				return err
			}
			limit := cmd.Uint64("limit")
			for n := uint64(0); limit == 0 || n < limit; n++ {
				addr, ok := w.Next()
				if !ok {
					break
				}
				if _, err := fmt.Fprintln(out, addr); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
