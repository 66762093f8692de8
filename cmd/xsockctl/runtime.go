package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsock/pkg/config/xconf"
	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/observability/xmetrics"
	"github.com/omeyang/xsock/pkg/observability/xrotate"
	"github.com/omeyang/xsock/pkg/util/xdns"
	"github.com/omeyang/xsock/pkg/util/xresolve"
)

const (
	backendSystem = "system"
	backendDNS    = "dns"

	defaultTimeout = 5 * time.Second
)

// Settings 是 xsockctl 的完整配置，对应配置文件结构。
type Settings struct {
	Log      LogSettings      `koanf:"log"`
	Resolver ResolverSettings `koanf:"resolver"`
}

type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File 为空时输出到 stderr。
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

type ResolverSettings struct {
	// Backend 为 "system" 或 "dns"。
	Backend     string        `koanf:"backend"`
	Server      string        `koanf:"server"`
	Net         string        `koanf:"net"`
	Timeout     time.Duration `koanf:"timeout"`
	Concurrency int           `koanf:"concurrency"`
}

func defaultSettings() Settings {
	return Settings{
		Log: LogSettings{Level: "warn", Format: "text", MaxSizeMB: 50, MaxBackups: 3},
		Resolver: ResolverSettings{
			Backend:     backendSystem,
			Net:         "udp",
			Timeout:     defaultTimeout,
			Concurrency: xresolve.DefaultConcurrency,
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件（.yaml/.yml/.json）",
			Sources: cli.EnvVars("XSOCK_CONFIG"),
		},
		&cli.StringFlag{Name: "log-level", Usage: "日志级别 debug/info/warn/error"},
		&cli.StringFlag{Name: "log-format", Usage: "日志格式 text/json"},
		&cli.StringFlag{Name: "log-file", Usage: "日志文件，按大小轮转"},
		&cli.StringFlag{
			Name:    "resolver",
			Aliases: []string{"r"},
			Usage:   "解析后端 system/dns",
		},
		&cli.StringFlag{
			Name:    "dns-server",
			Usage:   "dns 后端使用的服务器",
			Sources: cli.EnvVars("XSOCK_DNS_SERVER"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "解析超时",
		},
	}
}

// loadSettings 依次应用默认值、配置文件和显式设置的命令行选项。
func loadSettings(cmd *cli.Command) (Settings, error) {
	s := defaultSettings()
	if path := cmd.String("config"); path != "" {
		if _, err := xconf.Load(path, &s); err != nil {
			return Settings{}, err
		}
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		s.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("resolver") {
		s.Resolver.Backend = cmd.String("resolver")
	}
	if cmd.IsSet("dns-server") {
		s.Resolver.Server = cmd.String("dns-server")
	}
	if cmd.IsSet("timeout") {
		s.Resolver.Timeout = cmd.Duration("timeout")
	}
	s.Resolver.Backend = strings.ToLower(strings.TrimSpace(s.Resolver.Backend))
	return s, nil
}

// appRuntime 是 Before 构建、各命令共享的运行时依赖。
type appRuntime struct {
	settings Settings
	logger   xlog.LoggerWithLevel
	cleanup  func() error
	adapter  *xresolve.Adapter
}

type runtimeKey struct{}

func runtimeFrom(ctx context.Context) (*appRuntime, error) {
	rt, ok := ctx.Value(runtimeKey{}).(*appRuntime)
	if !ok {
		return nil, errors.New("xsockctl: runtime not initialized")
	}
	return rt, nil
}

func setupRuntime(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return ctx, err
	}

	b := xlog.New().
		SetOutput(cmd.ErrWriter).
		SetLevelString(s.Log.Level).
		SetFormat(s.Log.Format)
	if s.Log.File != "" {
		b.SetRotation(s.Log.File,
			xrotate.WithMaxSize(s.Log.MaxSizeMB),
			xrotate.WithMaxBackups(s.Log.MaxBackups),
		)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return ctx, &usageError{msg: err.Error()}
	}
	xlog.SetDefault(logger)

	resolver, err := newResolver(s.Resolver, logger)
	if err != nil {
		_ = cleanup()
		return ctx, err
	}
	observer, err := xmetrics.NewOTelObserver()
	if err != nil {
		_ = cleanup()
		return ctx, err
	}
	adapter, err := xresolve.New(resolver,
		xresolve.WithLogger(logger),
		xresolve.WithObserver(observer),
		xresolve.WithConcurrency(s.Resolver.Concurrency),
	)
	if err != nil {
		_ = cleanup()
		return ctx, err
	}

	rt := &appRuntime{settings: s, logger: logger, cleanup: cleanup, adapter: adapter}
	logger.Debug(ctx, "runtime ready", xlog.Component("xsockctl"), slog.String("resolver", rt.String()))
	return context.WithValue(ctx, runtimeKey{}, rt), nil
}

func teardownRuntime(ctx context.Context, _ *cli.Command) error {
	rt, err := runtimeFrom(ctx)
	if err != nil {
		return nil
	}
	return rt.cleanup()
}

func newResolver(s ResolverSettings, logger xlog.Logger) (xresolve.Resolver, error) {
	switch s.Backend {
	case "", backendSystem:
		return xresolve.SystemResolver{}, nil
	case backendDNS:
		if s.Server == "" {
			return nil, usagef("--resolver dns 需要 --dns-server 或配置 resolver.server")
		}
		c, err := xdns.New(s.Server,
			xdns.WithTimeout(s.Timeout),
			xdns.WithNet(s.Net),
			xdns.WithLogger(logger),
		)
		if err != nil {
			return nil, &usageError{msg: err.Error()}
		}
		return c, nil
	default:
		return nil, usagef("未知解析后端 %q，可选 %s/%s", s.Backend, backendSystem, backendDNS)
	}
}

// withTimeout 为解析类命令设置截止时间，非正数表示不限。
func (rt *appRuntime) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rt.settings.Resolver.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rt.settings.Resolver.Timeout)
}

func (rt *appRuntime) String() string {
	return fmt.Sprintf("backend=%s server=%s timeout=%s",
		rt.settings.Resolver.Backend, rt.settings.Resolver.Server, rt.settings.Resolver.Timeout)
}
