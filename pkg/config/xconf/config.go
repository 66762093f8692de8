package xconf

import "github.com/knadh/koanf/v2"

// Format 是配置格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 是只读配置视图。基础读取直接使用 [Config.Client] 返回的 koanf 实例。
type Config interface {
	Client() *koanf.Koanf

	// Unmarshal 把 path 下的配置解码到 target，path 为空时解码整个配置。
	Unmarshal(path string, target any) error

	// Set 覆盖单个键，用于命令行参数优先于配置文件。
	Set(key string, value any) error

	// Reload 重新读取配置文件，从字节创建的 Config 返回 [ErrReloadUnsupported]。
	Reload() error

	// Path 返回配置文件路径，从字节创建时为空。
	Path() string
	Format() Format
}
